package redis

import (
	"context"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type settingsRepository struct {
	client *redislib.Client
	prefix string
}

// NewSettingsRepository creates a Redis-backed settings repository for
// per-list display preferences. Values have no TTL; they live until changed.
func NewSettingsRepository(client *redislib.Client) repository.SettingsRepository {
	return &settingsRepository{
		client: client,
		prefix: "settings:card-variant:",
	}
}

func (r *settingsRepository) GetCardVariant(ctx context.Context, listKey string) (domain.CardVariant, error) {
	result, err := r.client.Get(ctx, r.key(listKey)).Result()
	if err != nil {
		if err == redislib.Nil {
			return domain.CardVariantFull, nil
		}
		return domain.CardVariantFull, err
	}

	variant := domain.CardVariant(result)
	if !variant.IsValid() {
		return domain.CardVariantFull, nil
	}
	return variant, nil
}

func (r *settingsRepository) SaveCardVariant(ctx context.Context, listKey string, variant domain.CardVariant) error {
	if !variant.IsValid() {
		return domain.ErrInvalidPayload
	}
	return r.client.Set(ctx, r.key(listKey), string(variant), 0).Err()
}

func (r *settingsRepository) key(listKey string) string {
	return fmt.Sprintf("%s%s", r.prefix, listKey)
}
