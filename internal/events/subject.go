package events

import "github.com/honeycarbs/jobboard/internal/domain/job"

// Subject builds the NATS subject for an event type
func Subject(prefix string, typ job.EventType) string {
	if prefix == "" {
		return string(typ)
	}
	return prefix + "." + string(typ)
}
