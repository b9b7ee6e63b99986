package repository

import (
	"context"

	"github.com/qreport/backend/domain"
)

// SettingsRepository stores per-list display preferences. Reads return
// domain.CardVariantFull when no preference was persisted yet.
type SettingsRepository interface {
	GetCardVariant(ctx context.Context, listKey string) (domain.CardVariant, error)
	SaveCardVariant(ctx context.Context, listKey string, variant domain.CardVariant) error
}
