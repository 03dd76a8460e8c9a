package audit

import "github.com/sirupsen/logrus"

// Outcomes recorded for moderation actions. Every admin mutation logs one
// line regardless of whether it was applied.
const (
	OutcomeApplied = "applied"
	OutcomeDenied  = "denied"
	OutcomeNoop    = "noop"
	OutcomeFailed  = "failed"
)

type Logger struct {
	log *logrus.Logger
}

func New(log *logrus.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Action(action string, actorID, targetID uint, outcome string) {
	entry := l.log.WithFields(logrus.Fields{
		"action":    action,
		"actor_id":  actorID,
		"target_id": targetID,
		"outcome":   outcome,
	})
	if outcome == OutcomeFailed {
		entry.Error("admin action")
		return
	}
	entry.Info("admin action")
}
