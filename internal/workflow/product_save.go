// Package workflow runs the multi-request product edit. Uploads happen
// first; when a later step fails, the files already stored are deleted
// again, and any that cannot be deleted are queued for the cleanup worker.
package workflow

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/domain/task"
	"catalog/admin/internal/validation"
)

const (
	OriginImages      = "images"
	OriginSpreadsheet = "spreadsheet"
)

// Backend is the subset of the catalog client the workflow calls.
type Backend interface {
	UploadFiles(ctx context.Context, files []client.File) ([]string, error)
	DeleteFile(ctx context.Context, id string) error
	UpdateProduct(ctx context.Context, id domain.ID, req client.ProductUpdate) error
}

// Enqueuer receives files that could not be deleted.
type Enqueuer interface {
	AddTask(ctx context.Context, t task.Task) (string, error)
}

// SaveInput is an edit of an existing product. Images already stored are
// kept in ExistingImages; NewImages are uploaded and appended.
type SaveInput struct {
	ProductID        domain.ID   `validate:"required"`
	Name             string      `validate:"required"`
	Description      string
	UnitPrice        float64     `validate:"gt=0"`
	QuantityInStock  int         `validate:"gte=0"`
	SpecificationIDs []domain.ID `validate:"min=1"`
	ExistingImages   []string
	NewImages        []client.File
	// Spreadsheet replaces ExistingSpreadsheet when set.
	Spreadsheet         *client.File
	ExistingSpreadsheet string
}

type ProductSave struct {
	backend Backend
	orphans Enqueuer
}

// NewProductSave builds the workflow. orphans may be nil, in which case
// undeletable files are only logged.
func NewProductSave(backend Backend, orphans Enqueuer) *ProductSave {
	return &ProductSave{backend: backend, orphans: orphans}
}

// Run validates the input, uploads new files and sends the update. The
// returned request is what the backend accepted.
func (w *ProductSave) Run(ctx context.Context, in SaveInput) (*client.ProductUpdate, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if len(in.ExistingImages)+len(in.NewImages) == 0 {
		return nil, validation.New("images", "min", "1")
	}

	var uploaded []upload

	imageIDs, err := w.backend.UploadFiles(ctx, in.NewImages)
	if err != nil {
		return nil, fmt.Errorf("failed to upload images: %w", err)
	}
	for _, id := range imageIDs {
		uploaded = append(uploaded, upload{id: id, origin: OriginImages})
	}

	spreadsheet := in.ExistingSpreadsheet
	if in.Spreadsheet != nil {
		ids, err := w.backend.UploadFiles(ctx, []client.File{*in.Spreadsheet})
		if err != nil {
			w.compensate(ctx, uploaded, err)
			return nil, fmt.Errorf("failed to upload specification spreadsheet: %w", err)
		}
		for _, id := range ids {
			uploaded = append(uploaded, upload{id: id, origin: OriginSpreadsheet})
		}
		if len(ids) > 0 {
			spreadsheet = ids[0]
		}
	}

	images := make([]string, 0, len(in.ExistingImages)+len(imageIDs))
	images = append(images, in.ExistingImages...)
	images = append(images, imageIDs...)

	req := client.ProductUpdate{
		Name:                  in.Name,
		UnitPrice:             in.UnitPrice,
		Description:           in.Description,
		QuantityInStock:       in.QuantityInStock,
		SpecificationIDs:      in.SpecificationIDs,
		ImageURLs:             images,
		SpecificationExcelURL: spreadsheet,
	}

	if err := w.backend.UpdateProduct(ctx, in.ProductID, req); err != nil {
		w.compensate(ctx, uploaded, err)
		return nil, fmt.Errorf("failed to update product %s: %w", in.ProductID, err)
	}
	return &req, nil
}

type upload struct {
	id     string
	origin string
}

// compensate removes files stored by earlier steps. The context of a
// cancelled run is detached so cleanup still reaches the backend.
func (w *ProductSave) compensate(ctx context.Context, uploaded []upload, cause error) {
	if len(uploaded) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	log.Warnf("⚠️ Product save failed (%v), removing %d uploaded file(s)", cause, len(uploaded))
	for _, u := range uploaded {
		err := w.backend.DeleteFile(ctx, u.id)
		if err == nil {
			continue
		}

		if w.orphans == nil {
			log.Errorf("❌ File %s is orphaned: %v", u.id, err)
			continue
		}
		_, qErr := w.orphans.AddTask(ctx, &task.OrphanedUploadTask{
			FileID: u.id,
			Origin: u.origin,
			Error:  err.Error(),
		})
		if qErr != nil {
			log.Errorf("❌ Failed to queue orphaned file %s: %v", u.id, qErr)
			continue
		}
		log.Warnf("🔄 Queued orphaned file %s for cleanup", u.id)
	}
}
