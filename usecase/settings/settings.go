package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type UseCase struct {
	settings repository.SettingsRepository
	logger   *zap.Logger
}

func New(settings repository.SettingsRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{settings: settings, logger: logger}
}

// GetCardVariant falls back to FULL when the preference cannot be read.
func (uc *UseCase) GetCardVariant(ctx context.Context, listKey string) domain.CardVariant {
	variant, err := uc.settings.GetCardVariant(ctx, listKey)
	if err != nil {
		uc.logger.Warn("failed to read card variant preference",
			zap.String("list", listKey), zap.Error(err))
		return domain.CardVariantFull
	}
	return variant
}

// CycleCardVariant advances FULL -> COMPACT -> MINIMAL -> FULL. The write is
// best-effort: a failure is logged, the cycled value is still returned.
func (uc *UseCase) CycleCardVariant(ctx context.Context, listKey string) domain.CardVariant {
	next := uc.GetCardVariant(ctx, listKey).Next()
	if err := uc.settings.SaveCardVariant(ctx, listKey, next); err != nil {
		uc.logger.Warn("failed to persist card variant preference",
			zap.String("list", listKey), zap.Error(err))
	}
	return next
}
