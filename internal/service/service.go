// Package service orchestrates render jobs: fetch, composite, assemble,
// clean up, notify.
package service

import (
	"context"
	"time"

	"github.com/xiaot623/wrapped/internal/adapter/bereal"
	"github.com/xiaot623/wrapped/internal/adapter/notify"
	"github.com/xiaot623/wrapped/internal/config"
	"github.com/xiaot623/wrapped/internal/domain"
	"github.com/xiaot623/wrapped/internal/media"
	"github.com/xiaot623/wrapped/internal/session"
	"github.com/xiaot623/wrapped/internal/storage"
)

// Encoder assembles composite frames into the final muxed video.
type Encoder interface {
	AudioDuration(ctx context.Context, path string) (time.Duration, error)
	BuildPlan(mode domain.Mode, frames []domain.CompositeFrame, endcardPath string, audioDuration time.Duration) (*media.Plan, error)
	Assemble(ctx context.Context, plan *media.Plan, audioPath, outPath string) error
}

// Ensure the media assembler satisfies the Encoder interface.
var _ Encoder = (*media.Assembler)(nil)

type Service struct {
	provider   bereal.Provider
	sessions   *session.Store
	artifacts  *storage.Manager
	compositor *media.Compositor
	endcard    *media.EndcardRenderer
	encoder    Encoder
	notifier   notify.Notifier
	config     *config.Config
}

func New(provider bereal.Provider, sessions *session.Store, artifacts *storage.Manager, compositor *media.Compositor, endcard *media.EndcardRenderer, encoder Encoder, notifier notify.Notifier, cfg *config.Config) *Service {
	return &Service{
		provider:   provider,
		sessions:   sessions,
		artifacts:  artifacts,
		compositor: compositor,
		endcard:    endcard,
		encoder:    encoder,
		notifier:   notifier,
		config:     cfg,
	}
}
