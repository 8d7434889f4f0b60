package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/xiaot623/wrapped/internal/adapter/notify"
	"github.com/xiaot623/wrapped/internal/domain"
	"github.com/xiaot623/wrapped/internal/media"
)

const (
	downloadConcurrency = 8
	dayFileLayout       = "2006-01-02"
)

// RenderVideo runs one render job synchronously: fetch the year's memories,
// composite each day, assemble the slideshow against the uploaded audio, and
// clean up intermediates. It returns the deterministic video filename.
//
// Job states: created -> fetching -> compositing -> assembling -> cleaning ->
// done, with failed reachable from any non-terminal state. Cleaning is
// best-effort and never demotes a finished job.
func (s *Service) RenderVideo(ctx context.Context, req domain.RenderRequest, audio io.Reader) (*domain.RenderResult, error) {
	jobID := "job_" + uuid.New().String()[:8]
	s.setStatus(jobID, domain.JobStatusCreated)

	start, end, err := domain.YearRange(req.Year)
	if err != nil {
		return nil, err
	}

	stored, ok := s.sessions.Get(req.Phone)
	if !ok || stored != req.Token {
		return nil, domain.ErrInvalidToken
	}

	// A working directory is owned by exactly one job at a time.
	if err := s.artifacts.Acquire(req.Phone, req.Year); err != nil {
		return nil, err
	}
	defer s.artifacts.Release(req.Phone, req.Year)

	layout := s.artifacts.Layout()
	if _, err := s.artifacts.Prepare(req.Phone, req.Year); err != nil {
		return nil, s.fail(jobID, err)
	}

	// Audio save failure degrades to a silent render rather than failing the
	// job.
	audioPath := layout.AudioPath(req.Phone, req.Year)
	if err := saveUpload(audio, audioPath); err != nil {
		log.Printf("WARN: job %s: could not save music file: %v", jobID, err)
		audioPath = ""
	}

	s.setStatus(jobID, domain.JobStatusFetching)
	memories, err := s.fetchMemories(ctx, req, start, end)
	if err != nil {
		return nil, s.fail(jobID, err)
	}

	assets, fetchSkipped := s.downloadAssets(ctx, req, memories)

	s.setStatus(jobID, domain.JobStatusCompositing)
	frames, compositeSkipped := s.compositeFrames(ctx, req, assets)
	skipped := fetchSkipped + compositeSkipped
	if skipped > 0 {
		log.Printf("WARN: job %s: skipped %d of %d days", jobID, skipped, len(memories))
	}
	if len(frames) == 0 {
		return nil, s.fail(jobID, domain.ErrNothingToRender)
	}
	domain.SortFrames(frames)

	endcardPath := layout.EndcardPath(req.Phone, req.Year)
	stats := media.EndcardStats{FrameCount: len(frames), Year: req.Year}
	if err := s.endcard.Render(stats, endcardPath); err != nil {
		return nil, s.fail(jobID, fmt.Errorf("render endcard: %w", err))
	}

	s.setStatus(jobID, domain.JobStatusAssembling)
	videoName := layout.VideoName(req.Token, req.Phone, req.Year)
	if err := s.assemble(ctx, jobID, req.Mode, frames, endcardPath, audioPath, layout.VideoPath(videoName)); err != nil {
		return nil, s.fail(jobID, err)
	}

	// Cleanup errors are logged, not surfaced: the render already succeeded.
	s.setStatus(jobID, domain.JobStatusCleaning)
	if err := s.artifacts.Finalize(req.Phone, req.Year); err != nil {
		log.Printf("WARN: job %s: cleanup failed: %v", jobID, err)
	}

	s.setStatus(jobID, domain.JobStatusDone)
	s.notifyDone(ctx, jobID, req.Phone, videoName)

	return &domain.RenderResult{
		VideoFile:   videoName,
		Frames:      len(frames),
		SkippedDays: skipped,
	}, nil
}

// fetchMemories lists the daily pairs for the range. An empty year is
// distinguished from a provider failure so callers can tell "nothing to
// wrap" apart from "try again later".
func (s *Service) fetchMemories(ctx context.Context, req domain.RenderRequest, start, end time.Time) ([]domain.Memory, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.config.ProviderTimeout)
	defer cancel()

	memories, err := s.provider.Memories(fetchCtx, req.Token, start, end)
	if err != nil {
		return nil, fmt.Errorf("could not generate images: %w", err)
	}
	if len(memories) == 0 {
		return nil, domain.ErrNoMemories
	}

	domain.SortMemories(memories)
	return memories, nil
}

// downloadAssets materializes each memory's image pair. A failed day is
// dropped, never a half-pair.
func (s *Service) downloadAssets(ctx context.Context, req domain.RenderRequest, memories []domain.Memory) ([]domain.MemoryAssets, int) {
	layout := s.artifacts.Layout()
	results := make([]*domain.MemoryAssets, len(memories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)
	for i, mem := range memories {
		i, mem := i, mem
		g.Go(func() error {
			day := mem.Date.Format(dayFileLayout)
			primaryPath := filepath.Join(layout.PrimaryDir(req.Phone, req.Year), day+imageExt(mem.PrimaryURL))
			secondaryPath := filepath.Join(layout.SecondaryDir(req.Phone, req.Year), day+imageExt(mem.SecondaryURL))

			if err := s.provider.Download(gctx, mem.PrimaryURL, primaryPath); err != nil {
				log.Printf("WARN: skipping %s: primary download failed: %v", day, err)
				return nil
			}
			if err := s.provider.Download(gctx, mem.SecondaryURL, secondaryPath); err != nil {
				log.Printf("WARN: skipping %s: secondary download failed: %v", day, err)
				return nil
			}

			results[i] = &domain.MemoryAssets{
				Memory:        mem,
				PrimaryPath:   primaryPath,
				SecondaryPath: secondaryPath,
			}
			return nil
		})
	}
	_ = g.Wait()

	var assets []domain.MemoryAssets
	for _, r := range results {
		if r != nil {
			assets = append(assets, *r)
		}
	}
	return assets, len(memories) - len(assets)
}

// compositeFrames runs the frame compositor across days in parallel. Days
// are independent; ordering is restored by capture date afterwards. A
// corrupt capture skips its day rather than failing the job.
func (s *Service) compositeFrames(ctx context.Context, req domain.RenderRequest, assets []domain.MemoryAssets) ([]domain.CompositeFrame, int) {
	layout := s.artifacts.Layout()
	results := make([]*domain.CompositeFrame, len(assets))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, asset := range assets {
		i, asset := i, asset
		g.Go(func() error {
			day := asset.Date.Format(dayFileLayout)
			outPath := filepath.Join(layout.CombinedDir(req.Phone, req.Year), day+".jpg")

			if err := s.compositor.Composite(asset.PrimaryPath, asset.SecondaryPath, outPath); err != nil {
				log.Printf("WARN: skipping %s: composite failed: %v", day, err)
				return nil
			}
			results[i] = &domain.CompositeFrame{Date: asset.Date, Path: outPath}
			return nil
		})
	}
	_ = g.Wait()

	var frames []domain.CompositeFrame
	for _, r := range results {
		if r != nil {
			frames = append(frames, *r)
		}
	}
	return frames, len(assets) - len(frames)
}

func (s *Service) assemble(ctx context.Context, jobID string, mode domain.Mode, frames []domain.CompositeFrame, endcardPath, audioPath, outPath string) error {
	var audioDuration time.Duration
	if audioPath != "" {
		dur, err := s.encoder.AudioDuration(ctx, audioPath)
		if err != nil {
			log.Printf("WARN: job %s: could not probe audio, rendering silent: %v", jobID, err)
			audioPath = ""
		} else {
			audioDuration = dur
		}
	}

	plan, err := s.encoder.BuildPlan(mode, frames, endcardPath, audioDuration)
	if err != nil {
		return err
	}

	encodeCtx, cancel := context.WithTimeout(ctx, s.encodeTimeout(len(plan.Segments)))
	defer cancel()

	if err := s.encoder.Assemble(encodeCtx, plan, audioPath, outPath); err != nil {
		return fmt.Errorf("assemble slideshow: %w", err)
	}
	return nil
}

func (s *Service) notifyDone(ctx context.Context, jobID, phone, videoName string) {
	link := s.config.PublicBaseURL + "/video/" + videoName

	res := s.notifier.VideoReady(ctx, "+"+phone, link)
	switch res.Status {
	case notify.StatusSent:
		log.Printf("job %s: notified %s", jobID, phone)
	case notify.StatusSkippedByPolicy:
		log.Printf("job %s: notification skipped: %s", jobID, res.Reason)
	case notify.StatusFailed:
		log.Printf("ERROR: job %s: notification failed: %s", jobID, res.Reason)
	}
}

func (s *Service) setStatus(jobID string, status domain.JobStatus) {
	log.Printf("job %s: %s", jobID, status)
}

func (s *Service) fail(jobID string, err error) error {
	s.setStatus(jobID, domain.JobStatusFailed)
	return err
}

func saveUpload(src io.Reader, path string) error {
	if src == nil {
		return fmt.Errorf("no audio upload")
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return nil
}

// imageExt picks the on-disk extension for a capture URL, defaulting to .jpg
// for anything unrecognized.
func imageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	switch ext := path.Ext(u.Path); ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
