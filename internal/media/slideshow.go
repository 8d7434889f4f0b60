package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/xiaot623/wrapped/internal/domain"
)

// Encode settings shared by both modes.
const (
	encodeFPS = 30

	// maxCrossfade caps modern-mode transitions so short dwell times never
	// spend more than half the frame fading.
	maxCrossfade = 500 * time.Millisecond
)

// Segment is one timed still in the slideshow.
type Segment struct {
	Path  string
	Dwell time.Duration
}

// Plan is the timing schedule for one slideshow, computed up front so it can
// be inspected and tested without running the encoder.
type Plan struct {
	Mode     domain.Mode
	Segments []Segment // composite frames in capture order, endcard last

	// Crossfade is the transition length between segments; zero means hard
	// cuts.
	Crossfade time.Duration

	// TotalDuration is the length of the final video.
	TotalDuration time.Duration

	// TruncateAudio reports whether the audio track is cut to TotalDuration.
	// The audio is never looped.
	TruncateAudio bool
}

// Assembler sequences composite frames into a muxed video via ffmpeg.
type Assembler struct {
	ClassicDwell time.Duration
	EndcardDwell time.Duration
}

// NewAssembler creates an Assembler with the configured dwell times.
func NewAssembler(classicDwell, endcardDwell time.Duration) *Assembler {
	return &Assembler{ClassicDwell: classicDwell, EndcardDwell: endcardDwell}
}

// BuildPlan computes the timing schedule for the given frames and mode.
//
// classic: fixed per-frame dwell, hard cuts; total = frames*dwell + endcard
// dwell; audio truncated to the video length.
//
// modern: per-frame dwell = audio duration / frame count so the frame track
// spans the audio exactly, crossfade transitions; the endcard dwell extends
// past the end of the audio. With no usable audio, modern falls back to
// classic pacing (degraded silent render).
func (a *Assembler) BuildPlan(mode domain.Mode, frames []domain.CompositeFrame, endcardPath string, audioDuration time.Duration) (*Plan, error) {
	if len(frames) == 0 {
		return nil, domain.ErrNothingToRender
	}

	plan := &Plan{Mode: mode}

	dwell := a.ClassicDwell
	switch mode {
	case domain.ModeClassic:
		plan.TruncateAudio = true
	case domain.ModeModern:
		if audioDuration > 0 {
			dwell = audioDuration / time.Duration(len(frames))
		}
		plan.Crossfade = dwell / 4
		if plan.Crossfade > maxCrossfade {
			plan.Crossfade = maxCrossfade
		}
	default:
		return nil, fmt.Errorf("invalid mode: %q", mode)
	}

	for _, frame := range frames {
		plan.Segments = append(plan.Segments, Segment{Path: frame.Path, Dwell: dwell})
	}
	plan.Segments = append(plan.Segments, Segment{Path: endcardPath, Dwell: a.EndcardDwell})

	plan.TotalDuration = dwell*time.Duration(len(frames)) + a.EndcardDwell
	return plan, nil
}

// Assemble runs the encode for a previously built plan, muxing the audio
// track at audioPath. An empty audioPath produces a silent video. The context
// bounds the encode; callers should size the deadline to the frame count.
func (a *Assembler) Assemble(ctx context.Context, plan *Plan, audioPath, outPath string) error {
	var args []string
	var err error
	if plan.Crossfade > 0 && len(plan.Segments) > 1 {
		args = xfadeArgs(plan, audioPath, outPath)
	} else {
		args, err = concatArgs(plan, audioPath, outPath)
		if err != nil {
			return err
		}
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// Never leave a truncated file behind for the serving layer to find.
		_ = os.Remove(outPath)
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(string(out), 512))
	}
	return nil
}

// concatArgs encodes hard cuts via the concat demuxer with per-entry
// durations.
func concatArgs(plan *Plan, audioPath, outPath string) ([]string, error) {
	listPath := filepath.Join(filepath.Dir(plan.Segments[0].Path), "slideshow.txt")
	if err := os.WriteFile(listPath, []byte(ConcatList(plan.Segments)), 0o644); err != nil {
		return nil, fmt.Errorf("write concat list: %w", err)
	}

	args := []string{
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath, "-c:a", "aac")
	}
	args = append(args,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", encodeFPS),
		"-t", ffSeconds(plan.TotalDuration),
		"-movflags", "+faststart",
		"-loglevel", "error",
		outPath,
	)
	return args, nil
}

// ConcatList renders the concat demuxer input for the given segments. The
// final entry is repeated without a duration, which the demuxer requires for
// the last frame to be honored.
func ConcatList(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "file '%s'\n", concatQuote(seg.Path))
		fmt.Fprintf(&b, "duration %s\n", ffSeconds(seg.Dwell))
	}
	fmt.Fprintf(&b, "file '%s'\n", concatQuote(segments[len(segments)-1].Path))
	return b.String()
}

// concatQuote escapes a path for a single-quoted concat list entry. The
// demuxer has no in-quote escapes, so a quote closes, escapes, and reopens.
func concatQuote(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

// xfadeArgs encodes crossfade transitions by chaining the xfade filter over
// looped still inputs. Each input is held for its dwell plus the fade overlap
// consumed by the transition into the next segment.
func xfadeArgs(plan *Plan, audioPath, outPath string) []string {
	fade := plan.Crossfade

	var args []string
	args = append(args, "-y")
	for i, seg := range plan.Segments {
		hold := seg.Dwell
		if i < len(plan.Segments)-1 {
			hold += fade
		}
		args = append(args, "-loop", "1", "-t", ffSeconds(hold), "-i", seg.Path)
	}
	audioIndex := -1
	if audioPath != "" {
		audioIndex = len(plan.Segments)
		args = append(args, "-i", audioPath)
	}

	var filter strings.Builder
	prev := "[0:v]"
	offset := plan.Segments[0].Dwell
	for i := 1; i < len(plan.Segments); i++ {
		label := fmt.Sprintf("[v%d]", i)
		fmt.Fprintf(&filter, "%s[%d:v]xfade=transition=fade:duration=%s:offset=%s%s;",
			prev, i, ffSeconds(fade), ffSeconds(offset), label)
		prev = label
		offset += plan.Segments[i].Dwell
	}
	fmt.Fprintf(&filter, "%sformat=yuv420p[vout]", prev)

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[vout]",
	)
	if audioIndex >= 0 {
		args = append(args, "-map", fmt.Sprintf("%d:a", audioIndex), "-c:a", "aac")
	}
	args = append(args,
		"-c:v", "libx264",
		"-r", fmt.Sprintf("%d", encodeFPS),
		"-t", ffSeconds(plan.TotalDuration),
		"-movflags", "+faststart",
		"-loglevel", "error",
		outPath,
	)
	return args
}

// ffSeconds formats a duration as fractional seconds the way ffmpeg expects.
func ffSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
