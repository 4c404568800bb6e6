package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/config"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/session"
)

// CatalogClient is the typed gateway to the catalog REST API.
type CatalogClient interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) error
	CurrentUser(ctx context.Context) (*domain.User, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, req *catalog.CreateRequest) error
	UpdateCategory(ctx context.Context, req *catalog.UpdateRequest) error
	DeleteCategory(ctx context.Context, id domain.ID) error

	ListProducts(ctx context.Context, page domain.Page) ([]domain.Product, error)
	GetProduct(ctx context.Context, id domain.ID) (*domain.Product, error)
	CreateProduct(ctx context.Context, form ProductForm) error
	UpdateProduct(ctx context.Context, id domain.ID, req ProductUpdate) error
	DeleteProduct(ctx context.Context, id domain.ID) error

	UploadFiles(ctx context.Context, files []File) ([]string, error)
	DeleteFile(ctx context.Context, id string) error
	DownloadFile(ctx context.Context, id string, w io.Writer) error
	FileURL(id string) string

	GetCart(ctx context.Context) (*domain.Cart, error)
	AddToCart(ctx context.Context, productID domain.ID, quantity int) error
	ChangeCartItemQuantity(ctx context.Context, itemID domain.ID, quantity int) error
	RemoveCartItem(ctx context.Context, itemID domain.ID) error
	ClearCart(ctx context.Context) error

	ListPromotions(ctx context.Context) ([]domain.Promotion, error)
	GetPromotion(ctx context.Context, id domain.ID) (*domain.Promotion, error)
	CreatePromotion(ctx context.Context, req PromotionInput) error
	UpdatePromotion(ctx context.Context, id domain.ID, req PromotionInput) error
	DeletePromotion(ctx context.Context, id domain.ID) error
	AttachPromotion(ctx context.Context, req AttachPromotionRequest) error

	ListPromotionTypes(ctx context.Context) ([]domain.PromotionType, error)
	GetPromotionType(ctx context.Context, id domain.ID) (*domain.PromotionType, error)
	CreatePromotionType(ctx context.Context, req PromotionTypeInput) error
	UpdatePromotionType(ctx context.Context, id domain.ID, req PromotionTypeInput) error
	DeletePromotionType(ctx context.Context, id domain.ID) error
}

type catalogClient struct {
	rl             ratelimit.Limiter
	baseURL        string
	fileDeletePath string
	httpClient     *resty.Client
	session        *session.Session
}

func NewCatalogClient(cfg config.APIConfig, sess *session.Session) CatalogClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &catalogClient{
		rl:             ratelimit.New(cfg.MaxRequestsPerSecond),
		baseURL:        baseURL,
		fileDeletePath: cfg.FileDeletePath,
		httpClient:     client,
		session:        sess,
	}
}

// bodyMode tells do how to read a successful response.
type bodyMode int

const (
	enveloped bodyMode = iota // {"data": ...}
	bare                      // the value itself
	raw                       // unparsed bytes into a *[]byte
)

// do sends one request. Every call reads the token from the session and
// a 401 clears it. There are no retries.
func (c *catalogClient) do(ctx context.Context, method, path string, prepare func(*resty.Request), mode bodyMode, out interface{}) error {
	c.rl.Take()

	requestID := uuid.NewString()
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)

	token, err := c.session.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if token != "" {
		req.SetAuthToken(token)
	}

	if prepare != nil {
		prepare(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}

	log.WithFields(log.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode(),
		"request_id": requestID,
	}).Debug("API call finished")

	body := resp.Bytes()

	if resp.StatusCode() == http.StatusUnauthorized {
		if err := c.session.Invalidate(ctx); err != nil {
			log.Errorf("Failed to clear session after 401: %v", err)
		}
		// A rejected login is a credentials problem, not an expired session.
		if path == loginPath {
			return newAPIError(resp.StatusCode(), body)
		}
		return ErrUnauthorized
	}

	if resp.IsError() {
		return newAPIError(resp.StatusCode(), body)
	}

	if out == nil {
		return nil
	}
	return decode(body, mode, out)
}

func decode(body []byte, mode bodyMode, out interface{}) error {
	if mode == raw {
		dst, ok := out.(*[]byte)
		if !ok {
			return fmt.Errorf("raw responses need a *[]byte, got %T", out)
		}
		*dst = body
		return nil
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	if mode == enveloped {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
			body = env.Data
		}
	}

	if bytes.Equal(body, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func withJSON(body interface{}) func(*resty.Request) {
	return func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}
}

func pathID(format string, id domain.ID) string {
	return fmt.Sprintf(format, url.PathEscape(id.String()))
}
