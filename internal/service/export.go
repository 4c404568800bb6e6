package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/pricing"
	"catalog/admin/internal/repository"
	"catalog/admin/internal/state"
)

// ExportResult counts what one export run wrote.
type ExportResult struct {
	Categories int
	Pages      int
	Products   int
	StartPage  int
}

// ExportService copies the catalog into Postgres, page by page, storing
// each product with the price it displays at export time.
type ExportService struct {
	api          client.CatalogClient
	repository   repository.CatalogRepository
	stateManager state.StateManager
	workers      int
	pageSize     int
	now          func() time.Time
}

func NewExportService(
	api client.CatalogClient,
	repository repository.CatalogRepository,
	stateManager state.StateManager,
	workers int,
	pageSize int,
) *ExportService {
	return &ExportService{
		api:          api,
		repository:   repository,
		stateManager: stateManager,
		workers:      max(1, workers),
		pageSize:     max(1, pageSize),
		now:          time.Now,
	}
}

type productPage struct {
	number   int
	products []domain.Product
}

// Run exports the tree and then every product page after the last one a
// previous run finished. fresh discards that progress first.
func (s *ExportService) Run(ctx context.Context, fresh bool) (*ExportResult, error) {
	if fresh {
		if err := s.stateManager.Reset(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.repository.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	tree, err := catalog.Build(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to build category tree: %w", err)
	}
	savedCategories, err := s.repository.SaveCategories(ctx, tree)
	if err != nil {
		return nil, err
	}
	log.Infof("✅ Exported %d category nodes", savedCategories)

	lastPage, err := s.stateManager.GetLastExportedPage(ctx)
	if err != nil {
		return nil, err
	}
	startPage := lastPage + 1
	if lastPage > 0 {
		log.Infof("🔄 Continue from page %d", startPage)
	}

	exportedAt := s.now()
	progress := newPageProgress(lastPage, func(done int) {
		if err := s.stateManager.SetLastExportedPage(ctx, done); err != nil {
			log.Warnf("⚠️ Failed to save export progress at page %d: %v", done, err)
		}
	})
	var products, pages atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	pagesCh := make(chan productPage, s.workers)

	g.Go(func() error {
		defer close(pagesCh)
		for number := startPage; ; number++ {
			batch, err := s.api.ListProducts(gctx, domain.Page{Number: number, Size: s.pageSize})
			if err != nil {
				return fmt.Errorf("failed to fetch product page %d: %w", number, err)
			}
			if len(batch) == 0 {
				return nil
			}

			select {
			case pagesCh <- productPage{number: number, products: batch}:
			case <-gctx.Done():
				return gctx.Err()
			}

			if len(batch) < s.pageSize {
				return nil
			}
		}
	})

	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			for page := range pagesCh {
				for _, p := range page.products {
					price := pricing.ComputeDisplayPrice(p, exportedAt)
					if err := s.repository.SaveProduct(gctx, p, price, exportedAt); err != nil {
						return err
					}
					products.Add(1)
				}
				pages.Add(1)

				progress.complete(page.number)
			}
			return nil
		})
	}

	result := &ExportResult{
		Categories: savedCategories,
		StartPage:  startPage,
	}
	err = g.Wait()
	result.Pages = int(pages.Load())
	result.Products = int(products.Load())
	if err != nil {
		return result, err
	}

	log.Infof("✅ Export finished: %d pages, %d products", result.Pages, result.Products)
	return result, nil
}

// pageProgress tracks the highest page below which every page is stored.
// Workers finish pages out of order, so only a contiguous run counts.
// save runs under the lock so stored progress never moves backwards.
type pageProgress struct {
	mu   sync.Mutex
	last int
	done map[int]bool
	save func(last int)
}

func newPageProgress(last int, save func(int)) *pageProgress {
	return &pageProgress{last: last, done: make(map[int]bool), save: save}
}

func (p *pageProgress) complete(page int) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done[page] = true
	advanced := false
	for p.done[p.last+1] {
		delete(p.done, p.last+1)
		p.last++
		advanced = true
	}
	if advanced {
		p.save(p.last)
	}
	return p.last, advanced
}
