// Package domain defines the core domain models for the render service.
package domain

import "fmt"

// Mode selects the slideshow pacing and transition style.
type Mode string

const (
	// ModeClassic uses a fixed per-frame dwell time with hard cuts.
	ModeClassic Mode = "classic"
	// ModeModern paces frames evenly across the audio track with crossfades.
	ModeModern Mode = "modern"
)

// ParseMode maps a raw mode string to a Mode. The empty string selects
// ModeClassic; any other unknown value is a validation error.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeClassic):
		return ModeClassic, nil
	case string(ModeModern):
		return ModeModern, nil
	default:
		return "", fmt.Errorf("invalid mode: %q", s)
	}
}

// JobStatus represents the status of a render job.
type JobStatus string

const (
	JobStatusCreated     JobStatus = "CREATED"
	JobStatusFetching    JobStatus = "FETCHING"
	JobStatusCompositing JobStatus = "COMPOSITING"
	JobStatusAssembling  JobStatus = "ASSEMBLING"
	JobStatusCleaning    JobStatus = "CLEANING"
	JobStatusDone        JobStatus = "DONE"
	JobStatusFailed      JobStatus = "FAILED"
)
