package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/client"
	"catalog/admin/internal/config"
	"catalog/admin/internal/queue"
	"catalog/admin/internal/repository"
	"catalog/admin/internal/service"
	"catalog/admin/internal/session"
	"catalog/admin/internal/state"
	"catalog/admin/internal/workflow"
)

var ErrRedisRequired = errors.New("this command needs redis (session.backend=redis)")

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Session *session.Session
	Client  client.CatalogClient
	Queue   queue.Queue

	Auth           *service.AuthService
	Categories     *service.CategoryService
	Products       *service.ProductService
	Cart           *service.CartService
	Promotions     *service.PromotionService
	PromotionTypes *service.PromotionTypeService

	db    *pgxpool.Pool
	redis *redis.Client
}

// New wires the console. Redis is connected only for the redis session
// backend; Postgres waits until an export asks for it.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
	}

	var store session.Store
	switch cfg.Session.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Debug("✅ Connected to Redis successfully")
		c.redis = rdb
		store = session.NewRedisStore(rdb, cfg.Session.KeyPrefix)

		q, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
		if err != nil {
			return nil, err
		}
		c.Queue = q
	default:
		store = session.NewMemoryStore()
	}

	c.Session = session.New(store)
	c.Client = client.NewCatalogClient(cfg.API, c.Session)

	var orphans workflow.Enqueuer
	if c.Queue != nil {
		orphans = c.Queue
	}
	save := workflow.NewProductSave(c.Client, orphans)

	c.Auth = service.NewAuthService(c.Client, c.Session)
	c.Categories = service.NewCategoryService(c.Client)
	c.Products = service.NewProductService(c.Client, save, cfg.API.PageSize)
	c.Cart = service.NewCartService(c.Client)
	c.Promotions = service.NewPromotionService(c.Client)
	c.PromotionTypes = service.NewPromotionTypeService(c.Client)

	return c, nil
}

// Export copies the catalog into Postgres.
func (c *Container) Export(ctx context.Context, fresh bool) (*service.ExportResult, error) {
	if c.redis == nil {
		return nil, ErrRedisRequired
	}

	if c.db == nil {
		db, err := pgxpool.New(ctx, c.Config.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		c.db = db
	}

	export := service.NewExportService(
		c.Client,
		repository.NewCatalogRepository(c.db),
		state.NewRedisStateManager(c.redis),
		c.Config.Export.MaxWorkers,
		c.Config.Export.PageSize,
	)
	return export.Run(ctx, fresh)
}

// RunCleanup works the orphaned-upload stream. With once set it drains
// what is queued and returns; otherwise it runs until ctx is cancelled.
func (c *Container) RunCleanup(ctx context.Context, once bool) (int, error) {
	if c.Queue == nil {
		return 0, ErrRedisRequired
	}

	cleanup := service.NewCleanupService(c.Client, c.Queue, c.Config.Cleanup.MaxRetries, c.Config.Cleanup.MinIdleTime)
	if once {
		return cleanup.Drain(ctx)
	}

	return 0, cleanup.RunWorkers(ctx, c.Config.Cleanup.MaxWorkers)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
