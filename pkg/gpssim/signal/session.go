package signal

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session correlates the log lines emitted across a multi-buffer
// synthesis run (one call to GenSignalWithData/GenBasebandSignalsWithData
// per chunk) under a single request ID, the way a long-running stream
// handler would. It carries no synthesis state of its own: State and
// SatelliteInfo remain the caller's to thread across calls.
type Session struct {
	ID     uuid.UUID
	logger logrus.FieldLogger
}

// NewSession returns a Session stamped with a fresh UUID and logging
// through logger. A nil logger defaults to logrus.New(), writing to
// stderr.
func NewSession(logger logrus.FieldLogger) *Session {
	if logger == nil {
		logger = logrus.New()
	}
	return &Session{ID: uuid.New(), logger: logger}
}

// warnEmptyBuffer flags a zero-length sample buffer: synthesis with no
// samples to write still advances no state, so callers doing this
// repeatedly are very likely misconfigured rather than intentionally
// requesting a no-op.
func (s *Session) warnEmptyBuffer(op string) {
	if s == nil {
		return
	}
	s.logger.WithField("session", s.ID).Warnf("signal: %s called with zero-length sample buffer", op)
}
