// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "go.uber.org/zap"

// newDefaultLogger builds the package default logger, gated the same way the
// teacher code gated its log.Printf calls behind a debug build tag: a
// production (info-level, no stack traces on Debug) logger normally, and a
// more verbose development logger under the debug build tag.
func newDefaultLogger() *zap.SugaredLogger {
	var l *zap.Logger
	if debugBuild {
		dl, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		} else {
			l = dl
		}
	} else {
		pl, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		} else {
			l = pl
		}
	}
	return l.Sugar()
}

// SetLogger overrides the manager's logger. Passing nil disables logging.
func (m *Manager) SetLogger(l *zap.SugaredLogger) {
	m.log = l
}
