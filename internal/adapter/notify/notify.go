// Package notify delivers completion messages to the user. Delivery is
// always best-effort: a failed notification never fails the render job.
package notify

import "context"

// Status classifies the outcome of a notification attempt.
type Status string

const (
	// StatusSent means the transport accepted the message.
	StatusSent Status = "SENT"
	// StatusSkippedByPolicy means delivery was intentionally not attempted,
	// e.g. in development environments.
	StatusSkippedByPolicy Status = "SKIPPED_BY_POLICY"
	// StatusFailed means the transport rejected the message.
	StatusFailed Status = "FAILED"
)

// Result is the explicit outcome of a notification attempt.
type Result struct {
	Status Status
	Reason string
}

// Notifier dispatches a "your video is ready" message to a phone number.
type Notifier interface {
	VideoReady(ctx context.Context, phone, link string) Result
}
