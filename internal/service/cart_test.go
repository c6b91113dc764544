package service

import (
	"context"
	"testing"

	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddItem_MergesSameArticle(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "a@test.com")
	article := createArticle(t, r, "Camiseta", 10, 5)

	cartID1, err := svc.AddItem(ctx, user.ID, article.ID, 3)
	require.NoError(t, err)
	cartID2, err := svc.AddItem(ctx, user.ID, article.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, cartID1, cartID2)

	var items []models.CartItem
	require.NoError(t, r.DB.Where("cart_id = ?", cartID1).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartService_AddItem_InsufficientStock(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "a@test.com")
	article := createArticle(t, r, "Reloj", 99, 1)

	_, err := svc.AddItem(ctx, user.ID, article.ID, 2)
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)

	// unknown article reads as no stock at all
	_, err = svc.AddItem(ctx, user.ID, "missing-article", 1)
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "a@test.com")
	article := createArticle(t, r, "Libro", 15, 5)

	_, err := svc.AddItem(ctx, user.ID, article.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddItem(ctx, user.ID, article.ID, -1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddItem(ctx, user.ID, "", 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCartService_RemoveItem(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "a@test.com")
	article := createArticle(t, r, "Balón", 20, 5)

	err := svc.RemoveItem(ctx, user.ID, article.ID)
	assert.ErrorIs(t, err, repo.ErrCartNotFound)

	_, err = svc.AddItem(ctx, user.ID, article.ID, 1)
	require.NoError(t, err)

	err = svc.RemoveItem(ctx, user.ID, "other-article")
	assert.ErrorIs(t, err, repo.ErrItemNotFound)

	require.NoError(t, svc.RemoveItem(ctx, user.ID, article.ID))

	err = svc.RemoveItem(ctx, user.ID, article.ID)
	assert.ErrorIs(t, err, repo.ErrItemNotFound)
}

func TestCartService_Clear_DestroysCartRow(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "a@test.com")
	article := createArticle(t, r, "Silla", 45, 5)

	err := svc.Clear(ctx, user.ID)
	assert.ErrorIs(t, err, repo.ErrCartNotFound)

	_, err = svc.AddItem(ctx, user.ID, article.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, user.ID))

	var cartCount, itemCount int64
	r.DB.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	r.DB.Model(&models.CartItem{}).Count(&itemCount)
	assert.Zero(t, cartCount)
	assert.Zero(t, itemCount)
}

func TestCartService_Snapshot(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "a@test.com")

	view, err := svc.Snapshot(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalPrice)

	shirt := createArticle(t, r, "Camiseta", 10, 5)
	watch := createArticle(t, r, "Reloj", 99.5, 2)

	_, err = svc.AddItem(ctx, user.ID, shirt.ID, 3)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.ID, watch.ID, 1)
	require.NoError(t, err)

	view, err = svc.Snapshot(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.InDelta(t, 10*3+99.5, view.TotalPrice, 1e-9)

	// snapshot does not mutate anything
	var itemCount int64
	r.DB.Model(&models.CartItem{}).Count(&itemCount)
	assert.EqualValues(t, 2, itemCount)
}
