package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/session"
	"catalog/admin/internal/validation"
	"catalog/admin/internal/workflow"
)

func percent(v float64) *float64 { return &v }

func TestCategoryCreateRefetchesTree(t *testing.T) {
	api := newFakeAPI()
	api.categories = []domain.Category{{ID: "1", Name: "Electronics"}}
	svc := NewCategoryService(api)

	tree, err := svc.Create(context.Background(), catalog.CreateInput{Level: 2, Name: "Phones", ParentID: "1"})
	require.NoError(t, err)
	assert.Equal(t, []catalog.Option{{ID: "1", Name: "Electronics"}}, tree.ListLevel1())

	require.Len(t, api.created, 1)
	assert.Equal(t, "Phones.cat", api.created[0].Body.Description)
	assert.Equal(t, []string{"CreateCategory", "ListCategories"}, api.calls)
}

func TestCategoryCreateWithoutParentSendsNothing(t *testing.T) {
	api := newFakeAPI()
	_, err := NewCategoryService(api).Create(context.Background(), catalog.CreateInput{Level: 3, Name: "128GB"})
	assert.True(t, IsValidation(err))
	assert.Empty(t, api.calls)
}

func TestCategoryDeleteSurfacesBackendMessage(t *testing.T) {
	api := newFakeAPI()
	api.failWith = &client.APIError{StatusCode: 409, Message: "category has products"}

	_, err := NewCategoryService(api).Delete(context.Background(), "1")
	assert.EqualError(t, err, "category has products")
	assert.Equal(t, []string{"DeleteCategory"}, api.calls)
}

func TestProductListComputesDisplayPrice(t *testing.T) {
	api := newFakeAPI()
	api.pages = [][]domain.Product{{
		{ID: "1", Name: "Discounted", UnitPrice: 100, Promotions: []domain.ProductPromotion{{
			Name:            "January",
			DiscountPercent: percent(20),
			StartDate:       domain.MustParseTimestamp("2024-01-01"),
			EndDate:         domain.MustParseTimestamp("2024-01-31"),
		}}},
		{ID: "2", Name: "Plain", UnitPrice: 50},
	}}
	svc := NewProductService(api, nil, 12)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) }

	views, err := svc.List(context.Background(), domain.Page{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 80.0, views[0].Price.Current)
	assert.True(t, views[0].Price.HasDiscount)
	assert.Equal(t, 50.0, views[1].Price.Current)
	assert.False(t, views[1].Price.HasDiscount)
}

func TestProductCreateValidates(t *testing.T) {
	api := newFakeAPI()
	err := NewProductService(api, nil, 12).Create(context.Background(), client.ProductForm{Name: "Phone", UnitPrice: 10})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("specificationIDs"))
	assert.True(t, verr.Has("images"))
	assert.Empty(t, api.calls)
}

func TestProductSaveRunsWorkflowThenRereads(t *testing.T) {
	api := newFakeAPI()
	api.products["5"] = &domain.Product{ID: "5", Name: "Phone", UnitPrice: 100}
	updater := &recordingUpdater{fakeAPI: api}
	svc := NewProductService(api, workflow.NewProductSave(updater, nil), 12)

	view, err := svc.Save(context.Background(), workflow.SaveInput{
		ProductID:        "5",
		Name:             "Phone",
		UnitPrice:        120,
		SpecificationIDs: []domain.ID{"100"},
		ExistingImages:   []string{"img-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("5"), view.Product.ID)
	require.NotNil(t, updater.got)
	assert.Equal(t, 120.0, updater.got.UnitPrice)
	assert.Equal(t, 1, api.callCount("GetProduct"))
}

type recordingUpdater struct {
	*fakeAPI
	got *client.ProductUpdate
}

func (r *recordingUpdater) UploadFiles(context.Context, []client.File) ([]string, error) {
	return []string{}, nil
}

func (r *recordingUpdater) UpdateProduct(_ context.Context, _ domain.ID, req client.ProductUpdate) error {
	r.got = &req
	return nil
}

func TestAttachPromotionSubmitsFirstOnly(t *testing.T) {
	api := newFakeAPI()
	api.products["5"] = &domain.Product{ID: "5", UnitPrice: 10}
	svc := NewProductService(api, nil, 12)

	_, err := svc.AttachPromotion(context.Background(), AttachInput{
		ProductID:    "5",
		PromotionIDs: []domain.ID{"9", "10"},
		StartDate:    domain.MustParseTimestamp("2024-01-01T00:00"),
		EndDate:      domain.MustParseTimestamp("2024-01-31T23:59"),
	})
	require.NoError(t, err)
	require.Len(t, api.attached, 1)
	assert.Equal(t, domain.ID("9"), api.attached[0].PromotionID)
}

func TestAttachPromotionRejectsBadWindow(t *testing.T) {
	api := newFakeAPI()
	svc := NewProductService(api, nil, 12)

	_, err := svc.AttachPromotion(context.Background(), AttachInput{
		ProductID:    "5",
		PromotionIDs: []domain.ID{"9"},
		StartDate:    domain.MustParseTimestamp("2024-02-01"),
		EndDate:      domain.MustParseTimestamp("2024-01-01"),
	})
	assert.EqualError(t, err, "invalid input: endDate must be later than startDate")

	_, err = svc.AttachPromotion(context.Background(), AttachInput{ProductID: "5", PromotionIDs: []domain.ID{"9"}})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("startDate"))
	assert.Empty(t, api.calls)
}

func TestCartAddBoundedByStock(t *testing.T) {
	api := newFakeAPI()
	api.products["5"] = &domain.Product{ID: "5", Name: "Phone", UnitPrice: 10, QuantityInStock: 3}
	api.products["6"] = &domain.Product{ID: "6", Name: "Cable", UnitPrice: 2.5}
	svc := NewCartService(api)
	ctx := context.Background()

	_, err := svc.Add(ctx, "5", 4)
	assert.EqualError(t, err, "invalid input: quantity must be at most 3")
	assert.Zero(t, api.callCount("AddToCart"))

	_, err = svc.Add(ctx, "6", 100)
	assert.EqualError(t, err, "invalid input: quantity must be at most 99")

	cart, err := svc.Add(ctx, "5", 2)
	require.NoError(t, err)
	cart, err = svc.Add(ctx, "6", 99)
	require.NoError(t, err)
	assert.InDelta(t, 267.5, cart.Total(), 1e-9)
}

func TestCartChangeQuantityRejectsZero(t *testing.T) {
	api := newFakeAPI()
	_, err := NewCartService(api).ChangeQuantity(context.Background(), "item-5", 0)
	assert.True(t, IsValidation(err))
	assert.Empty(t, api.calls)
}

func TestCartMutationsRefetch(t *testing.T) {
	api := newFakeAPI()
	api.cart.Items = []domain.CartItem{
		{ID: "a", UnitPrice: 10, Quantity: 1},
		{ID: "b", UnitPrice: 5, Quantity: 2},
	}
	svc := NewCartService(api)
	ctx := context.Background()

	cart, err := svc.ChangeQuantity(ctx, "a", 3)
	require.NoError(t, err)
	assert.Equal(t, 40.0, cart.Total())

	cart, err = svc.Remove(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 30.0, cart.Total())
	assert.Equal(t, 2, api.callCount("GetCart"))
}

func TestCartClearIsIdempotent(t *testing.T) {
	api := newFakeAPI()
	api.cart.Items = []domain.CartItem{{ID: "a", UnitPrice: 10, Quantity: 1}}
	svc := NewCartService(api)
	ctx := context.Background()

	cart, err := svc.Clear(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	api.clearErr = &client.APIError{StatusCode: 404, Message: "cart not found"}
	cart, err = svc.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cart.Total())
}

func TestPromotionCreateValidatesAndRefetches(t *testing.T) {
	api := newFakeAPI()
	svc := NewPromotionService(api)
	ctx := context.Background()

	_, err := svc.Create(ctx, client.PromotionInput{Name: "Jan", PromotionTypeID: "1", DiscountRate: 120})
	assert.True(t, IsValidation(err))
	assert.Empty(t, api.calls)

	list, err := svc.Create(ctx, client.PromotionInput{Name: "Jan", PromotionTypeID: "1", DiscountRate: 20})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jan", list[0].Name)
	assert.Equal(t, []string{"CreatePromotion", "ListPromotions"}, api.calls)
}

func TestPromotionTypeDelete(t *testing.T) {
	api := newFakeAPI()
	api.types = []domain.PromotionType{{ID: "1", Name: "Seasonal"}, {ID: "2", Name: "Clearance"}}

	list, err := NewPromotionTypeService(api).Delete(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []domain.PromotionType{{ID: "2", Name: "Clearance"}}, list)
}

func TestLoginStoresSession(t *testing.T) {
	api := newFakeAPI()
	api.loginResp = &client.LoginResponse{Token: "tok", User: domain.User{ID: "3", Username: "alice"}}
	sess := session.New(session.NewMemoryStore())
	svc := NewAuthService(api, sess)
	ctx := context.Background()

	user, err := svc.Login(ctx, client.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	token, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, svc.Logout(ctx))
	info, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.False(t, info.Authenticated)
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	api := newFakeAPI()
	api.failWith = &client.APIError{StatusCode: 400, Message: "wrong password"}
	sess := session.New(session.NewMemoryStore())

	_, err := NewAuthService(api, sess).Login(context.Background(), client.LoginRequest{Username: "alice", Password: "x"})
	assert.EqualError(t, err, "wrong password")
	ok, err := sess.Authenticated(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterChecksConfirmation(t *testing.T) {
	api := newFakeAPI()
	svc := NewAuthService(api, session.New(session.NewMemoryStore()))

	err := svc.Register(context.Background(), client.RegisterRequest{
		Username: "bob", Password: "secret1", ConfirmPassword: "secret2", Email: "bob@example.com",
	})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("confirmPassword"))
	assert.Empty(t, api.calls)

	err = svc.Register(context.Background(), client.RegisterRequest{
		Username: "bob", Password: "secret1", ConfirmPassword: "secret1", Email: "bob@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Register"}, api.calls)
}

func TestUnauthorizedPassesThrough(t *testing.T) {
	api := newFakeAPI()
	api.failWith = client.ErrUnauthorized

	_, err := NewCartService(api).Get(context.Background())
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
}
