package usecase

import (
	"context"
	"time"

	"impacttrack/internal/repository"
	"impacttrack/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	ProjectUsecaseInterface
	ClusterUsecaseInterface
	OrganizationUsecaseInterface
	ParticipantUsecaseInterface
	ActivityUsecaseInterface
	VSLAUsecaseInterface
	AnalyticsUsecaseInterface
	TransferUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, timeout time.Duration, opts ...domain.Option) InterfaceUsecase {
	return domain.New(log, ctx, repo, timeout, opts...)
}
