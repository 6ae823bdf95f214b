// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package orders_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/services/orders"
	"codeberg.org/oliverandrich/go-storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contact() orders.Contact {
	return orders.Contact{
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@example.com",
		Address:   "1 Rabbit Hole",
	}
}

func TestCreate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := orders.NewService(repo)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice")
	mug := testutil.NewTestProduct(t, repo, "Mug", 1250)
	teapot := testutil.NewTestProduct(t, repo, "Teapot", 3000)
	require.NoError(t, repo.AddToBasket(ctx, user.ID, mug.ID))
	require.NoError(t, repo.AddToBasket(ctx, user.ID, mug.ID))
	require.NoError(t, repo.AddToBasket(ctx, user.ID, teapot.ID))

	order, err := svc.Create(ctx, user, contact())

	require.NoError(t, err)
	assert.Equal(t, user.ID, order.InitiatorID)
	assert.Equal(t, models.OrderPaid, order.Status)
	assert.Equal(t, int64(5500), order.Total)

	stored, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, stored.Status)
	assert.Equal(t, int64(5500), stored.Total)

	history := stored.History()
	require.Len(t, history.PurchasedItems, 2)
	assert.Equal(t, "Mug", history.PurchasedItems[0].ProductName)
	assert.Equal(t, int64(2), history.PurchasedItems[0].Quantity)
	assert.Equal(t, int64(2500), history.PurchasedItems[0].Sum)
	assert.Equal(t, int64(5500), history.TotalSum)

	lines, err := repo.ListBasket(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines, "basket must be emptied")
}

func TestCreate_EmptyBasket(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := orders.NewService(repo)
	user := testutil.NewTestUser(t, repo, "alice")

	order, err := svc.Create(context.Background(), user, contact())

	require.NoError(t, err)
	assert.Equal(t, int64(0), order.Total)
	assert.Empty(t, order.History().PurchasedItems)
}

func TestCreate_LeavesOtherBasketsAlone(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := orders.NewService(repo)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "alice")
	bob := testutil.NewTestUser(t, repo, "bob")
	mug := testutil.NewTestProduct(t, repo, "Mug", 1250)
	require.NoError(t, repo.AddToBasket(ctx, bob.ID, mug.ID))

	_, err := svc.Create(ctx, alice, contact())
	require.NoError(t, err)

	lines, err := repo.ListBasket(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestListForUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := orders.NewService(repo)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "alice")
	bob := testutil.NewTestUser(t, repo, "bob")

	first, err := svc.Create(ctx, alice, contact())
	require.NoError(t, err)
	second, err := svc.Create(ctx, alice, contact())
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, contact())
	require.NoError(t, err)

	list, err := svc.ListForUser(ctx, alice.ID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGetForUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := orders.NewService(repo)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "alice")
	bob := testutil.NewTestUser(t, repo, "bob")
	order, err := svc.Create(ctx, alice, contact())
	require.NoError(t, err)

	got, err := svc.GetForUser(ctx, alice.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	got, err = svc.GetForUser(ctx, bob.ID, order.ID)
	assert.ErrorIs(t, err, orders.ErrNotOwner)
	assert.Nil(t, got)

	_, err = svc.GetForUser(ctx, alice.ID, order.ID+100)
	assert.ErrorIs(t, err, orders.ErrNotFound)
}
