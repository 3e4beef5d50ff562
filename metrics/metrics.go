// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

// Package metrics exports a dd.Manager's read-only counters as Prometheus
// metrics. It only ever calls the Manager's public Read* methods, never
// reaching into the package's unexported fields, so a Collector built from
// this package stays valid across any future internal refactor of dd
// itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vellumdd/dd"
)

// Collector is a prometheus.Collector that snapshots a Manager's node
// table, cache, and reordering statistics on every scrape. Every metric is
// computed fresh from the Manager at scrape time rather than cached, so
// Collect never needs to track deltas for the counter-typed values.
type Collector struct {
	m *dd.Manager

	nodeCount     *prometheus.Desc
	peakNodeCount *prometheus.Desc
	deadCount     *prometheus.Desc
	memoryInUse   *prometheus.Desc
	keys          *prometheus.Desc

	gcCount      *prometheus.Desc
	reorderCount *prometheus.Desc
	swapCount    *prometheus.Desc
	cacheHits    *prometheus.Desc
	cacheLookUps *prometheus.Desc
}

// NewCollector builds a Collector for m. namespace/subsystem follow the
// usual Prometheus naming convention and may be empty.
func NewCollector(m *dd.Manager, namespace, subsystem string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		fq := prometheus.BuildFQName(namespace, subsystem, name)
		return prometheus.NewDesc(fq, help, nil, nil)
	}
	return &Collector{
		m: m,

		nodeCount:     desc("node_count", "Number of node-table slots in use, live or not yet collected."),
		peakNodeCount: desc("peak_node_count", "Current size of the node table in slots."),
		deadCount:     desc("dead_node_count", "Number of hash-consed nodes with a zero reference count."),
		memoryInUse:   desc("memory_in_use_bytes", "Estimated memory footprint of the node table and caches."),
		keys:          desc("keys", "Number of hash-consed entries, live or dead."),

		gcCount:      desc("gc_total", "Total number of garbage collections run."),
		reorderCount: desc("reorderings_total", "Total number of variable reordering passes run."),
		swapCount:    desc("adjacent_swaps_total", "Total number of adjacent variable swaps performed by reordering."),
		cacheHits:    desc("cache_hits_total", "Total operation-cache hits across every cache family."),
		cacheLookUps: desc("cache_lookups_total", "Total operation-cache probes (hits plus misses)."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodeCount
	ch <- c.peakNodeCount
	ch <- c.deadCount
	ch <- c.memoryInUse
	ch <- c.keys
	ch <- c.gcCount
	ch <- c.reorderCount
	ch <- c.swapCount
	ch <- c.cacheHits
	ch <- c.cacheLookUps
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.nodeCount, prometheus.GaugeValue, float64(c.m.ReadNodeCount()))
	ch <- prometheus.MustNewConstMetric(c.peakNodeCount, prometheus.GaugeValue, float64(c.m.ReadPeakNodeCount()))
	ch <- prometheus.MustNewConstMetric(c.deadCount, prometheus.GaugeValue, float64(c.m.ReadDead()))
	ch <- prometheus.MustNewConstMetric(c.memoryInUse, prometheus.GaugeValue, float64(c.m.ReadMemoryInUse()))
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.m.ReadKeys()))

	ch <- prometheus.MustNewConstMetric(c.gcCount, prometheus.CounterValue, float64(c.m.ReadGCCount()))
	ch <- prometheus.MustNewConstMetric(c.reorderCount, prometheus.CounterValue, float64(c.m.ReadReorderings()))
	ch <- prometheus.MustNewConstMetric(c.swapCount, prometheus.CounterValue, float64(c.m.ReadSwapCount()))
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(c.m.ReadCacheHits()))
	ch <- prometheus.MustNewConstMetric(c.cacheLookUps, prometheus.CounterValue, float64(c.m.ReadCacheLookUps()))
}
