package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// DashboardCacheRepository provides cached dashboard summaries using Redis
type DashboardCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached summaries
}

// NewDashboardCacheRepository creates a new repository instance with optional TTL
func NewDashboardCacheRepository(client *redis.Client, expiration time.Duration) *DashboardCacheRepository {
	return &DashboardCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetSummary fetches a cached dashboard summary for a user
func (r *DashboardCacheRepository) GetSummary(ctx context.Context, userID int64) (*models.DashboardSummary, error) {
	key := fmt.Sprintf("dashboard_summary:%d", userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"result", val,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("dashboard summary not found in cache for user %d", userID)
		}
		return nil, err
	}

	var summary models.DashboardSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", "hit",
		"error", nil,
	)

	return &summary, nil
}

// SetSummary caches a dashboard summary in Redis with expiration
func (r *DashboardCacheRepository) SetSummary(ctx context.Context, userID int64, summary *models.DashboardSummary) error {
	key := fmt.Sprintf("dashboard_summary:%d", userID)

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// InvalidateSummary drops the cached summary for a user after a ledger mutation
func (r *DashboardCacheRepository) InvalidateSummary(ctx context.Context, userID int64) error {
	key := fmt.Sprintf("dashboard_summary:%d", userID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "invalidated",
		"error", err,
	)

	return err
}
