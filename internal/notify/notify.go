package notify

import (
	"context"
	"log"
)

// Sink receives user-facing notifications (new week unlocked, debug mode
// toggled). Implementations must not block the caller on delivery problems.
type Sink interface {
	Notify(ctx context.Context, message string) error
}

// LogSink writes notifications to the process log. It is the default sink.
type LogSink struct{}

// Notify logs the message.
func (LogSink) Notify(_ context.Context, message string) error {
	log.Printf("notification: %s", message)
	return nil
}
