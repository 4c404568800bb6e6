package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/pricing"
)

// DB is the part of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// CatalogRepository stores the exported catalog snapshot.
type CatalogRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveCategories(ctx context.Context, tree *catalog.Tree) (int, error)
	SaveProduct(ctx context.Context, product domain.Product, price pricing.DisplayPrice, exportedAt time.Time) error
}

type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS catalog_categories (
	level       SMALLINT NOT NULL,
	id          TEXT NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	parent_id   TEXT,
	path        TEXT NOT NULL,
	PRIMARY KEY (level, id)
);
CREATE TABLE IF NOT EXISTS catalog_products (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	unit_price       DOUBLE PRECISION NOT NULL,
	current_price    DOUBLE PRECISION NOT NULL,
	discount_percent DOUBLE PRECISION NOT NULL,
	has_discount     BOOLEAN NOT NULL,
	data             JSONB NOT NULL,
	exported_at      TIMESTAMPTZ NOT NULL
);`

func (r *catalogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create export tables: %w", err)
	}
	return nil
}

// SaveCategories upserts every node of the tree and returns how many were written.
func (r *catalogRepository) SaveCategories(ctx context.Context, tree *catalog.Tree) (int, error) {
	query := `
	INSERT INTO catalog_categories (level, id, name, description, parent_id, path)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (level, id)
	DO UPDATE SET name = $3, description = $4, parent_id = $5, path = $6`

	var (
		saved int
		err   error
	)
	tree.Walk(func(n *catalog.Node) {
		if err != nil {
			return
		}
		path, _ := tree.Path(n.Level, n.ID)

		var parent *string
		if !n.ParentID.IsZero() {
			p := n.ParentID.String()
			parent = &p
		}

		if _, execErr := r.db.Exec(ctx, query, int(n.Level), n.ID.String(), n.Name, n.Description, parent, path); execErr != nil {
			err = fmt.Errorf("failed to save %s %s: %w", n.Level, n.ID, execErr)
			return
		}
		saved++
	})
	return saved, err
}

func (r *catalogRepository) SaveProduct(ctx context.Context, product domain.Product, price pricing.DisplayPrice, exportedAt time.Time) error {
	query := `
	INSERT INTO catalog_products (id, name, unit_price, current_price, discount_percent, has_discount, data, exported_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id)
	DO UPDATE SET name = $2, unit_price = $3, current_price = $4, discount_percent = $5,
		has_discount = $6, data = $7, exported_at = $8`

	_, err := r.db.Exec(ctx, query,
		product.ID.String(),
		product.Name,
		price.Original,
		price.Current,
		price.DiscountPercent,
		price.HasDiscount,
		product,
		exportedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ID, err)
	}
	return nil
}
