package service

import (
	"context"
	"sync"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
)

// fakeAPI is an in-memory backend. Methods a test does not expect panic
// through the nil embedded interface.
type fakeAPI struct {
	client.CatalogClient

	mu    sync.Mutex
	calls []string

	categories []domain.Category
	products   map[domain.ID]*domain.Product
	pages      [][]domain.Product
	cart       domain.Cart
	promotions []domain.Promotion
	types      []domain.PromotionType

	loginResp *client.LoginResponse
	attached  []client.AttachPromotionRequest
	created   []*catalog.CreateRequest
	deleted   []string

	failWith  error
	clearErr  error
	pageErrAt int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{products: make(map[domain.ID]*domain.Product)}
}

func (f *fakeAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failWith
}

func (f *fakeAPI) Login(_ context.Context, _ client.LoginRequest) (*client.LoginResponse, error) {
	if err := f.record("Login"); err != nil {
		return nil, err
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Register(_ context.Context, _ client.RegisterRequest) error {
	return f.record("Register")
}

func (f *fakeAPI) ListCategories(context.Context) ([]domain.Category, error) {
	if err := f.record("ListCategories"); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, req *catalog.CreateRequest) error {
	if err := f.record("CreateCategory"); err != nil {
		return err
	}
	f.created = append(f.created, req)
	return nil
}

func (f *fakeAPI) DeleteCategory(_ context.Context, id domain.ID) error {
	if err := f.record("DeleteCategory"); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id.String())
	return nil
}

func (f *fakeAPI) ListProducts(_ context.Context, page domain.Page) ([]domain.Product, error) {
	if err := f.record("ListProducts"); err != nil {
		return nil, err
	}
	if f.pageErrAt > 0 && page.Number == f.pageErrAt {
		return nil, errPage
	}
	if page.Number < 1 || page.Number > len(f.pages) {
		return []domain.Product{}, nil
	}
	return f.pages[page.Number-1], nil
}

func (f *fakeAPI) GetProduct(_ context.Context, id domain.ID) (*domain.Product, error) {
	if err := f.record("GetProduct"); err != nil {
		return nil, err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "product not found"}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeAPI) CreateProduct(context.Context, client.ProductForm) error {
	return f.record("CreateProduct")
}

func (f *fakeAPI) GetCart(context.Context) (*domain.Cart, error) {
	if err := f.record("GetCart"); err != nil {
		return nil, err
	}
	cart := domain.Cart{Items: append([]domain.CartItem{}, f.cart.Items...)}
	return &cart, nil
}

func (f *fakeAPI) AddToCart(_ context.Context, productID domain.ID, quantity int) error {
	if err := f.record("AddToCart"); err != nil {
		return err
	}
	p := f.products[productID]
	f.cart.Items = append(f.cart.Items, domain.CartItem{
		ID:          domain.ID("item-" + productID.String()),
		ProductID:   productID,
		ProductName: p.Name,
		UnitPrice:   p.UnitPrice,
		Quantity:    quantity,
	})
	return nil
}

func (f *fakeAPI) ChangeCartItemQuantity(_ context.Context, itemID domain.ID, quantity int) error {
	if err := f.record("ChangeCartItemQuantity"); err != nil {
		return err
	}
	for i := range f.cart.Items {
		if f.cart.Items[i].ID == itemID {
			f.cart.Items[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeAPI) RemoveCartItem(_ context.Context, itemID domain.ID) error {
	if err := f.record("RemoveCartItem"); err != nil {
		return err
	}
	kept := f.cart.Items[:0]
	for _, item := range f.cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	f.cart.Items = kept
	return nil
}

func (f *fakeAPI) ClearCart(context.Context) error {
	if err := f.record("ClearCart"); err != nil {
		return err
	}
	f.cart.Items = nil
	return f.clearErr
}

func (f *fakeAPI) AttachPromotion(_ context.Context, req client.AttachPromotionRequest) error {
	if err := f.record("AttachPromotion"); err != nil {
		return err
	}
	f.attached = append(f.attached, req)
	return nil
}

func (f *fakeAPI) ListPromotions(context.Context) ([]domain.Promotion, error) {
	if err := f.record("ListPromotions"); err != nil {
		return nil, err
	}
	return f.promotions, nil
}

func (f *fakeAPI) CreatePromotion(_ context.Context, in client.PromotionInput) error {
	if err := f.record("CreatePromotion"); err != nil {
		return err
	}
	f.promotions = append(f.promotions, domain.Promotion{
		ID: domain.ID("p-" + in.Name), Name: in.Name, PromotionTypeID: in.PromotionTypeID, DiscountRate: in.DiscountRate,
	})
	return nil
}

func (f *fakeAPI) ListPromotionTypes(context.Context) ([]domain.PromotionType, error) {
	if err := f.record("ListPromotionTypes"); err != nil {
		return nil, err
	}
	return f.types, nil
}

func (f *fakeAPI) DeletePromotionType(_ context.Context, id domain.ID) error {
	if err := f.record("DeletePromotionType"); err != nil {
		return err
	}
	kept := f.types[:0]
	for _, pt := range f.types {
		if pt.ID != id {
			kept = append(kept, pt)
		}
	}
	f.types = kept
	return nil
}

func (f *fakeAPI) DeleteFile(_ context.Context, id string) error {
	if err := f.record("DeleteFile"); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}
