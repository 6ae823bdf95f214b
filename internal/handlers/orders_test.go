// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"codeberg.org/oliverandrich/go-storefront/internal/handlers"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"codeberg.org/oliverandrich/go-storefront/internal/services/basket"
	"codeberg.org/oliverandrich/go-storefront/internal/services/orders"
	"codeberg.org/oliverandrich/go-storefront/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderHandlers(t *testing.T) (*repository.Repository, *orders.Service, *handlers.OrderHandlers) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	orderService := orders.NewService(repo)
	return repo, orderService, handlers.NewOrders(orderService, basket.NewService(repo), "http://localhost:8080/")
}

func placeOrder(t *testing.T, svc *orders.Service, user *models.User) *models.Order {
	t.Helper()
	order, err := svc.Create(context.Background(), user, orders.Contact{
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     user.Email,
		Address:   "1 Rabbit Hole",
	})
	require.NoError(t, err)
	return order
}

func orderContext(e *echo.Echo, id string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/orders/order/"+id, nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestOrders_List(t *testing.T) {
	repo, svc, h := newOrderHandlers(t)
	user := testutil.NewTestUser(t, repo, "alice")
	other := testutil.NewTestUser(t, repo, "bob")
	mine := placeOrder(t, svc, user)
	theirs := placeOrder(t, svc, other)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/orders", nil)
	prepare(c, user)

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/orders/order/`+strconv.FormatInt(mine.ID, 10)+`"`)
	assert.NotContains(t, rec.Body.String(), `href="/orders/order/`+strconv.FormatInt(theirs.ID, 10)+`"`)
}

func TestOrders_Detail(t *testing.T) {
	repo, svc, h := newOrderHandlers(t)
	user := testutil.NewTestUser(t, repo, "alice")
	product := testutil.NewTestProduct(t, repo, "Teapot", 2500)
	require.NoError(t, repo.AddToBasket(context.Background(), user.ID, product.ID))
	order := placeOrder(t, svc, user)

	e := echo.New()
	c, rec := orderContext(e, strconv.FormatInt(order.ID, 10))
	prepare(c, user)

	require.NoError(t, h.Detail(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Teapot")
	assert.Contains(t, rec.Body.String(), "$25.00")
	assert.Contains(t, rec.Body.String(), "Paid")
}

func TestOrders_DetailOtherUser(t *testing.T) {
	repo, svc, h := newOrderHandlers(t)
	owner := testutil.NewTestUser(t, repo, "alice")
	intruder := testutil.NewTestUser(t, repo, "mallory")
	order := placeOrder(t, svc, owner)

	e := echo.New()
	c, rec := orderContext(e, strconv.FormatInt(order.ID, 10))
	prepare(c, intruder)

	require.NoError(t, h.Detail(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get(echo.HeaderLocation))
}

func TestOrders_DetailNotFound(t *testing.T) {
	repo, _, h := newOrderHandlers(t)
	user := testutil.NewTestUser(t, repo, "alice")

	for _, id := range []string{"999", "abc", "0", "-1"} {
		t.Run(id, func(t *testing.T) {
			e := echo.New()
			c, _ := orderContext(e, id)
			prepare(c, user)

			err := h.Detail(c)

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusNotFound, he.Code)
		})
	}
}

func TestOrders_CreatePage(t *testing.T) {
	repo, _, h := newOrderHandlers(t)
	user := testutil.NewTestUser(t, repo, "alice")

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/orders/order-create", nil)
	prepare(c, user)

	require.NoError(t, h.CreatePage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="alice@example.com"`)
}

func TestOrders_Create(t *testing.T) {
	repo, _, h := newOrderHandlers(t)
	user := testutil.NewTestUser(t, repo, "alice")
	other := testutil.NewTestUser(t, repo, "bob")
	product := testutil.NewTestProduct(t, repo, "Teapot", 2500)
	ctx := context.Background()
	require.NoError(t, repo.AddToBasket(ctx, user.ID, product.ID))
	require.NoError(t, repo.AddToBasket(ctx, user.ID, product.ID))

	e := echo.New()
	c, rec := postForm(e, "/orders/order-create", url.Values{
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
		"email":      {"alice@example.com"},
		"address":    {"1 Rabbit Hole"},
		"initiator":  {strconv.FormatInt(other.ID, 10)},
	})
	prepare(c, user)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "http://localhost:8080/orders/order-success", rec.Header().Get(echo.HeaderLocation))

	list, err := repo.ListOrdersByInitiator(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.OrderPaid, list[0].Status)
	assert.Equal(t, int64(5000), list[0].Total)

	theirs, err := repo.ListOrdersByInitiator(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	lines, err := repo.ListBasket(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestOrders_CreateInvalid(t *testing.T) {
	repo, _, h := newOrderHandlers(t)
	user := testutil.NewTestUser(t, repo, "alice")

	e := echo.New()
	c, rec := postForm(e, "/orders/order-create", url.Values{
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
		"email":      {"not-an-email"},
		"address":    {""},
	})
	prepare(c, user)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a valid email address.")
	assert.Contains(t, rec.Body.String(), "This field is required.")

	list, err := repo.ListOrdersByInitiator(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrders_Success(t *testing.T) {
	repo, _, h := newOrderHandlers(t)
	user := testutil.NewTestUser(t, repo, "alice")

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/orders/order-success", nil)
	prepare(c, user)

	require.NoError(t, h.Success(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for your order!")
}
