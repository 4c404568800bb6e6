package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// StateManager remembers how far the catalog export got so an interrupted
// run can resume.
type StateManager interface {
	GetLastExportedPage(ctx context.Context) (int, error)
	SetLastExportedPage(ctx context.Context, pageNumber int) error
	Reset(ctx context.Context) error
}

type redisStateManager struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStateManager(redisClient *redis.Client) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		key:         "catalog:export:page",
	}
}

func (s *redisStateManager) GetLastExportedPage(ctx context.Context) (int, error) {
	val, err := s.redisClient.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil // No progress saved yet
		}
		return 0, fmt.Errorf("failed to get last exported page: %w", err)
	}

	page, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse last exported page %q: %w", val, err)
	}
	return page, nil
}

func (s *redisStateManager) SetLastExportedPage(ctx context.Context, pageNumber int) error {
	if err := s.redisClient.Set(ctx, s.key, pageNumber, 0).Err(); err != nil {
		return fmt.Errorf("failed to set last exported page: %w", err)
	}
	return nil
}

func (s *redisStateManager) Reset(ctx context.Context) error {
	if err := s.redisClient.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to reset export progress: %w", err)
	}
	return nil
}
