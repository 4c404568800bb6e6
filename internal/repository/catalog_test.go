package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/pricing"
)

type execCall struct {
	sql  string
	args []interface{}
}

type fakeDB struct {
	calls  []execCall
	failAt int
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return pgconn.CommandTag{}, errors.New("connection reset")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func sampleTree(t *testing.T) *catalog.Tree {
	t.Helper()
	tree, err := catalog.Build([]domain.Category{{
		ID: "1", Name: "Electronics", Description: "Electronics.cat",
		SubCategories: []domain.SubCategory{{
			ID: "10", Name: "Phones", ParentID: "1",
			Specifications: []domain.Specification{{ID: "100", Name: "128GB", ParentID: "10"}},
		}},
	}})
	require.NoError(t, err)
	return tree
}

func TestSaveCategories(t *testing.T) {
	db := &fakeDB{}
	repo := NewCatalogRepository(db)

	saved, err := repo.SaveCategories(context.Background(), sampleTree(t))
	require.NoError(t, err)
	assert.Equal(t, 3, saved)
	require.Len(t, db.calls, 3)

	root := db.calls[0].args
	assert.Equal(t, 1, root[0])
	assert.Equal(t, "1", root[1])
	assert.Nil(t, root[4])
	assert.Equal(t, "Electronics", root[5])

	leaf := db.calls[2].args
	assert.Equal(t, 3, leaf[0])
	parent := leaf[4].(*string)
	assert.Equal(t, "10", *parent)
	assert.Equal(t, "Electronics / Phones / 128GB", leaf[5])
}

func TestSaveCategoriesStopsAtFirstError(t *testing.T) {
	db := &fakeDB{failAt: 2}
	saved, err := NewCatalogRepository(db).SaveCategories(context.Background(), sampleTree(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 1, saved)
	assert.Len(t, db.calls, 2)
}

func TestSaveProduct(t *testing.T) {
	db := &fakeDB{}
	repo := NewCatalogRepository(db)
	at := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	product := domain.Product{ID: "5", Name: "Phone", UnitPrice: 100}
	price := pricing.DisplayPrice{Original: 100, Current: 80, DiscountPercent: 20, HasDiscount: true}

	require.NoError(t, repo.SaveProduct(context.Background(), product, price, at))
	require.Len(t, db.calls, 1)

	args := db.calls[0].args
	assert.Contains(t, db.calls[0].sql, "ON CONFLICT (id)")
	assert.Equal(t, []interface{}{"5", "Phone", 100.0, 80.0, 20.0, true, product, at}, args)
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, NewCatalogRepository(db).EnsureSchema(context.Background()))
	assert.Contains(t, db.calls[0].sql, "catalog_products")
}
