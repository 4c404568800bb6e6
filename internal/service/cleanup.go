package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain/task"
	"catalog/admin/internal/queue"
)

// FileDeleter removes stored uploads.
type FileDeleter interface {
	DeleteFile(ctx context.Context, id string) error
}

// CleanupService drains the orphaned-upload stream, deleting each file and
// re-queueing failures until maxRetries is reached.
type CleanupService struct {
	files       FileDeleter
	queue       queue.Queue
	stream      string
	maxRetries  int
	minIdleTime time.Duration
	block       time.Duration
}

func NewCleanupService(files FileDeleter, q queue.Queue, maxRetries, minIdleTime int) *CleanupService {
	return &CleanupService{
		files:       files,
		queue:       q,
		stream:      queue.StreamName(task.OrphanedUploadTaskType),
		maxRetries:  maxRetries,
		minIdleTime: time.Duration(minIdleTime) * time.Second,
		block:       5 * time.Second,
	}
}

// RunWorkers processes the stream until ctx is cancelled.
func (s *CleanupService) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	// Auto-claimer for messages left by crashed consumers
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(max(s.minIdleTime, time.Second))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := "autoclaimer-" + uuid.NewString()
				claimed, err := s.queue.AutoClaim(ctx, consumer, s.stream, s.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", s.stream, err)
					continue
				}
				if len(claimed) > 0 {
					log.Infof("🔄 Auto-claimed %d orphaned uploads", len(claimed))
				}
				for _, msg := range claimed {
					if err := s.processMessage(ctx, &msg); err != nil {
						log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("cleanup-worker-%d", workerID)
			log.Infof("🚀 Starting cleanup worker %d as consumer %s", workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 Cleanup worker %d stopping", workerID)
					return
				default:
				}

				msg, err := s.queue.GetTask(ctx, consumer, s.stream, s.block)
				if err != nil {
					if ctx.Err() == nil {
						log.Errorf("❌ Failed to get task from %s: %v", s.stream, err)
					}
					continue
				}
				if msg != nil {
					if err := s.processMessage(ctx, msg); err != nil {
						log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
					}
				}
			}
		}(i + 1)
	}

	wg.Wait()
	return nil
}

// Drain processes messages until the stream has nothing new, and returns
// how many it handled.
func (s *CleanupService) Drain(ctx context.Context) (int, error) {
	consumer := "drain-" + uuid.NewString()
	handled := 0
	for {
		msg, err := s.queue.GetTask(ctx, consumer, s.stream, 50*time.Millisecond)
		if err != nil {
			return handled, err
		}
		if msg == nil {
			return handled, nil
		}
		if err := s.processMessage(ctx, msg); err != nil {
			return handled, err
		}
		handled++
	}
}

func (s *CleanupService) processMessage(ctx context.Context, msg *redis.XMessage) error {
	orphan, err := task.Decode[*task.OrphanedUploadTask](msg.Values)
	if err != nil {
		log.Warnf("⚠️ Dropping unreadable message %s: %v", msg.ID, err)
		return s.queue.AckTask(ctx, s.stream, msg.ID)
	}

	if err := s.deleteOrRetry(ctx, orphan); err != nil {
		return err
	}
	return s.queue.AckTask(ctx, s.stream, msg.ID)
}

func (s *CleanupService) deleteOrRetry(ctx context.Context, orphan *task.OrphanedUploadTask) error {
	err := s.files.DeleteFile(ctx, orphan.FileID)
	if err == nil || client.IsNotFound(err) {
		log.Infof("🗑️ Removed orphaned file %s", orphan.FileID)
		return nil
	}

	orphan.RetryCount++
	orphan.Error = err.Error()
	if orphan.RetryCount >= s.maxRetries {
		log.Errorf("❌ Giving up on orphaned file %s after %d attempts: %v", orphan.FileID, orphan.RetryCount, err)
		return nil
	}

	if _, err := s.queue.AddTask(ctx, orphan); err != nil {
		return fmt.Errorf("failed to re-queue orphaned file %s: %w", orphan.FileID, err)
	}
	log.Warnf("🔄 Orphaned file %s will be retried (attempt %d): %v", orphan.FileID, orphan.RetryCount, err)
	return nil
}
