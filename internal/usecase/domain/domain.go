// Package domain implements the application usecases on top of the repository.
package domain

import (
	"context"
	"time"

	"impacttrack/internal/importer"
	"impacttrack/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultImportRows  = 5000
	defaultImportBytes = 10 << 20
	trendMonths        = 6
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	timeout time.Duration
	limits  importer.Limits
}

// Option adjusts a Usecase at construction.
type Option func(*Usecase)

// WithImportLimits bounds spreadsheet uploads.
func WithImportLimits(l importer.Limits) Option {
	return func(u *Usecase) {
		u.limits = l
	}
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	timeout time.Duration,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		ctx:     ctx,
		log:     log.Named("usecase"),
		repo:    repo,
		timeout: timeout,
		limits:  importer.Limits{MaxRows: defaultImportRows, MaxFileBytes: defaultImportBytes},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// withTimeout bounds a call by the configured per-operation timeout. A zero
// timeout leaves the parent deadline in charge.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
