package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mugangish/shelter-backend/internal/logger"
	"github.com/mugangish/shelter-backend/internal/models"
)

const (
	publishedSheltersKey = "shelters:published"
	publishedSheltersTTL = 5 * time.Minute
)

// ShelterCache кеширует выборку опубликованных убежищ, по которой
// выполняется радиусный поиск. Инвалидируется при любой мутации убежищ.
type ShelterCache struct {
	client *redis.Client
}

// NewShelterCache подключается к Redis и проверяет соединение.
func NewShelterCache(addr, password string, db int) (*ShelterCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: не удалось подключиться к redis: %w", err)
	}

	return &ShelterCache{client: client}, nil
}

// Close закрывает соединение с Redis.
func (c *ShelterCache) Close() error {
	return c.client.Close()
}

// GetPublished возвращает закешированную выборку или (nil, false).
func (c *ShelterCache) GetPublished(ctx context.Context) ([]models.Shelter, bool) {
	raw, err := c.client.Get(ctx, publishedSheltersKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && logger.Log != nil {
			logger.Log.Warnf("cache: ошибка чтения %s: %v", publishedSheltersKey, err)
		}
		return nil, false
	}

	var shelters []models.Shelter
	if err := json.Unmarshal(raw, &shelters); err != nil {
		// Битую запись выбрасываем, пересоберётся из базы.
		_ = c.client.Del(ctx, publishedSheltersKey).Err()
		return nil, false
	}

	return shelters, true
}

// SetPublished сохраняет выборку опубликованных убежищ.
func (c *ShelterCache) SetPublished(ctx context.Context, shelters []models.Shelter) {
	raw, err := json.Marshal(shelters)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, publishedSheltersKey, raw, publishedSheltersTTL).Err(); err != nil && logger.Log != nil {
		logger.Log.Warnf("cache: ошибка записи %s: %v", publishedSheltersKey, err)
	}
}

// Invalidate сбрасывает кеш выборки.
func (c *ShelterCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, publishedSheltersKey).Err(); err != nil && logger.Log != nil {
		logger.Log.Warnf("cache: ошибка инвалидации %s: %v", publishedSheltersKey, err)
	}
}

// Health проверяет доступность Redis.
func (c *ShelterCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
