package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"resty.dev/v3"
)

// UploadFiles stores the files and returns their identifiers in upload order.
func (c *catalogClient) UploadFiles(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	var result uploadResult
	err := c.do(ctx, http.MethodPost, "/file/upload/multi", func(r *resty.Request) {
		for _, f := range files {
			r.SetFileReader("images", f.Name, f.Reader)
		}
	}, enveloped, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %d file(s): %w", len(files), err)
	}

	if result.ImageURLs == nil {
		return []string{}, nil
	}
	return result.ImageURLs, nil
}

// DeleteFile removes a stored upload. Only the product save workflow uses
// it, to clean up after a failed step.
func (c *catalogClient) DeleteFile(ctx context.Context, id string) error {
	path := strings.ReplaceAll(c.fileDeletePath, "{id}", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, enveloped, nil)
}

func (c *catalogClient) DownloadFile(ctx context.Context, id string, w io.Writer) error {
	var content []byte
	err := c.do(ctx, http.MethodGet, "/file/view/"+url.PathEscape(id), nil, raw, &content)
	if err != nil {
		return err
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write file %s: %w", id, err)
	}
	return nil
}

// FileURL is the public address of a stored upload.
func (c *catalogClient) FileURL(id string) string {
	return c.baseURL + "/file/view/" + url.PathEscape(id)
}
