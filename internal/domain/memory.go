package domain

import (
	"errors"
	"sort"
	"time"
)

// Sentinel errors surfaced by the render pipeline.
var (
	// ErrNoMemories means the provider returned a valid but empty result for
	// the requested range.
	ErrNoMemories = errors.New("no memories in range")
	// ErrNothingToRender means no composite frames survived compositing.
	ErrNothingToRender = errors.New("nothing to render")
	// ErrInvalidToken means the caller's token does not match the verified
	// session for that identity, or the session expired.
	ErrInvalidToken = errors.New("invalid token")
)

// Memory is one calendar day's paired capture as reported by the provider.
// Both image URLs are always present; days with a missing half are dropped
// during fetch.
type Memory struct {
	Date         time.Time
	PrimaryURL   string
	SecondaryURL string
}

// MemoryAssets is a Memory whose images have been materialized to disk.
type MemoryAssets struct {
	Memory
	PrimaryPath   string
	SecondaryPath string
}

// CompositeFrame is the flattened image produced for exactly one Memory.
type CompositeFrame struct {
	Date time.Time
	Path string
}

// SortMemories orders memories by ascending capture date. This is the only
// valid slideshow order regardless of fetch order.
func SortMemories(memories []Memory) {
	sort.Slice(memories, func(i, j int) bool {
		return memories[i].Date.Before(memories[j].Date)
	})
}

// SortFrames orders composite frames by ascending capture date.
func SortFrames(frames []CompositeFrame) {
	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Date.Before(frames[j].Date)
	})
}
