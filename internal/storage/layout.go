// Package storage manages the on-disk layout and lifecycle of render
// artifacts.
//
// Working storage lives at <content-root>/<identity>/<year>/ with raw and
// composite assets beneath it; rendered videos live in a separate exports
// root under a deterministic filename.
package storage

import (
	"fmt"
	"path/filepath"
)

// Fixed names inside a working directory.
const (
	primaryDirName   = "primary"
	secondaryDirName = "secondary"
	combinedDirName  = "combined"
	audioFileName    = "song.wav"
	endcardFileName  = "endCard.jpg"
)

// tokenPrefixLen is how much of the bearer token goes into the video name.
const tokenPrefixLen = 10

// Layout computes paths for one service instance.
type Layout struct {
	ContentRoot string
	ExportsRoot string
}

// WorkDir is the per-(identity, year) working directory.
func (l Layout) WorkDir(identity, year string) string {
	return filepath.Join(l.ContentRoot, identity, year)
}

// PrimaryDir holds the raw primary captures.
func (l Layout) PrimaryDir(identity, year string) string {
	return filepath.Join(l.WorkDir(identity, year), primaryDirName)
}

// SecondaryDir holds the raw secondary captures.
func (l Layout) SecondaryDir(identity, year string) string {
	return filepath.Join(l.WorkDir(identity, year), secondaryDirName)
}

// CombinedDir holds the composite frames.
func (l Layout) CombinedDir(identity, year string) string {
	return filepath.Join(l.WorkDir(identity, year), combinedDirName)
}

// AudioPath is the fixed location of the uploaded audio track.
func (l Layout) AudioPath(identity, year string) string {
	return filepath.Join(l.WorkDir(identity, year), audioFileName)
}

// EndcardPath is where the rendered endcard is written.
func (l Layout) EndcardPath(identity, year string) string {
	return filepath.Join(l.WorkDir(identity, year), endcardFileName)
}

// VideoName derives the deterministic output filename from the token prefix,
// identity, and year.
func (l Layout) VideoName(token, identity, year string) string {
	prefix := token
	if len(prefix) > tokenPrefixLen {
		prefix = prefix[:tokenPrefixLen]
	}
	return fmt.Sprintf("%s-%s-%s.mp4", prefix, identity, year)
}

// VideoPath resolves a video filename under the exports root.
func (l Layout) VideoPath(name string) string {
	return filepath.Join(l.ExportsRoot, name)
}
