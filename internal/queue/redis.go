package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/config"
	"catalog/admin/internal/domain/task"
)

const StreamPrefix = "catalog:stream:"

// StreamName is the redis stream holding tasks of the given type.
func StreamName(taskType string) string {
	return StreamPrefix + taskType
}

type Queue interface {
	AddTask(ctx context.Context, task task.Task) (string, error) // Returns message ID
	GetTask(ctx context.Context, consumer, stream string, block time.Duration) (*redis.XMessage, error)
	AckTask(ctx context.Context, stream, msgID string) error
	AutoClaim(ctx context.Context, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error)
	Pending(ctx context.Context, stream string) (int64, error)
	EnsureStreamsExist(ctx context.Context) error
	Group() string
}

type redisQueue struct {
	redisClient *redis.Client
	groupName   string
	taskTypes   []string
}

func NewRedisQueue(ctx context.Context, redisClient *redis.Client, cfg config.RedisConfig) (Queue, error) {
	q := &redisQueue{
		redisClient: redisClient,
		groupName:   cfg.ConsumerGroup,
		taskTypes:   []string{task.OrphanedUploadTaskType},
	}

	if err := q.EnsureStreamsExist(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure streams exist: %w", err)
	}
	return q, nil
}

func (q *redisQueue) Group() string {
	return q.groupName
}

func (q *redisQueue) createGroup(ctx context.Context, stream string) error {
	err := q.redisClient.XGroupCreateMkStream(ctx, stream, q.groupName, "0").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Debugf("Group %s already exists for stream %s", q.groupName, stream)
		return nil
	}
	return err
}

func (q *redisQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	taskType := t.TaskType()
	streamName := StreamName(taskType)

	fields, err := task.Fields(t)
	if err != nil {
		return "", err
	}

	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: fields,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add task to Redis stream %s: %w", streamName, err)
	}

	log.Debugf("Added task %s to stream %s with message ID: %s", taskType, streamName, messageID)
	return messageID, nil
}

// GetTask returns nil, nil when nothing arrived within block.
func (q *redisQueue) GetTask(ctx context.Context, consumer, stream string, block time.Duration) (*redis.XMessage, error) {
	result, err := q.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    1,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from Redis stream %s: %w", stream, err)
	}

	if len(result) == 0 || len(result[0].Messages) == 0 {
		return nil, nil
	}
	return &result[0].Messages[0], nil
}

func (q *redisQueue) AckTask(ctx context.Context, stream, msgID string) error {
	if err := q.redisClient.XAck(ctx, stream, q.groupName, msgID).Err(); err != nil {
		return fmt.Errorf("failed to ack message %s on %s: %w", msgID, stream, err)
	}
	return nil
}

// AutoClaim takes over messages another consumer read but never acked.
func (q *redisQueue) AutoClaim(ctx context.Context, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error) {
	result, _, err := q.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    q.groupName,
		Consumer: consumer,
		MinIdle:  minIdleTime,
		Start:    "0-0",
		Count:    10,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to claim messages from Redis stream %s: %w", stream, err)
	}
	return result, nil
}

// Pending counts messages delivered to the group but not yet acked.
func (q *redisQueue) Pending(ctx context.Context, stream string) (int64, error) {
	res, err := q.redisClient.XPending(ctx, stream, q.groupName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read pending count for %s: %w", stream, err)
	}
	return res.Count, nil
}

// EnsureStreamsExist creates every stream and its consumer group upfront.
func (q *redisQueue) EnsureStreamsExist(ctx context.Context) error {
	for _, taskType := range q.taskTypes {
		streamName := StreamName(taskType)
		if err := q.createGroup(ctx, streamName); err != nil {
			return fmt.Errorf("failed to create consumer group for %s: %w", taskType, err)
		}
		log.Debugf("✅ Stream %s and consumer group %s ready", streamName, q.groupName)
	}
	return nil
}
