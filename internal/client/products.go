package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"resty.dev/v3"

	"catalog/admin/internal/domain"
)

func (c *catalogClient) ListProducts(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	err := c.do(ctx, http.MethodGet, "/products", func(r *resty.Request) {
		r.SetQueryParam("page", strconv.Itoa(page.Number)).
			SetQueryParam("size", strconv.Itoa(page.Size))
	}, enveloped, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (c *catalogClient) GetProduct(ctx context.Context, id domain.ID) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, pathID("/product/%s", id), nil, enveloped, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct posts the product and its images as one multipart form.
func (c *catalogClient) CreateProduct(ctx context.Context, form ProductForm) error {
	return c.do(ctx, http.MethodPost, "/product", func(r *resty.Request) {
		fields := map[string]string{
			"name":            form.Name,
			"description":     form.Description,
			"unitPrice":       strconv.FormatFloat(form.UnitPrice, 'f', -1, 64),
			"quantityInStock": strconv.Itoa(form.QuantityInStock),
		}
		for i, id := range form.SpecificationIDs {
			fields[fmt.Sprintf("specificationIds[%d]", i)] = id.String()
		}
		r.SetFormData(fields)

		for _, f := range form.Images {
			r.SetFileReader("images", f.Name, f.Reader)
		}
	}, enveloped, nil)
}

func (c *catalogClient) UpdateProduct(ctx context.Context, id domain.ID, req ProductUpdate) error {
	return c.do(ctx, http.MethodPut, pathID("/product/%s", id), withJSON(req), enveloped, nil)
}

func (c *catalogClient) DeleteProduct(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, pathID("/product/%s", id), nil, enveloped, nil)
}
