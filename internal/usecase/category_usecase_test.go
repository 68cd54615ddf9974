package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/auction-backend/internal/repository/memory"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/internal/validation"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

func newCategoryUC() (*usecase.CategoryUsecase, *memory.CategoryRepo) {
	repo := memory.NewCategoryRepo()
	uc := usecase.NewCategoryUsecase(repo, memory.NewTransactor(), validation.NewValidator(), logger.Discard{})

	return uc, repo
}

func TestAddCategory(t *testing.T) {
	uc, _ := newCategoryUC()
	ctx := context.Background()

	id, err := uc.AddCategory(ctx, "Electronics")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	category, err := uc.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Electronics", category.Name)
	require.Empty(t, category.Parents)
}

func TestAddCategoryInvalidName(t *testing.T) {
	uc, _ := newCategoryUC()
	ctx := context.Background()

	for _, name := range []string{"", "Tv", "electronics", "Gadgets 2024"} {
		_, err := uc.AddCategory(ctx, name)
		require.ErrorIs(t, err, e.ErrInvalidCategoryName, "name %q", name)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	uc, _ := newCategoryUC()

	_, err := uc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestLinkParent(t *testing.T) {
	uc, _ := newCategoryUC()
	ctx := context.Background()

	electronics, err := uc.AddCategory(ctx, "Electronics")
	require.NoError(t, err)
	phones, err := uc.AddCategory(ctx, "Phones")
	require.NoError(t, err)
	smartphones, err := uc.AddCategory(ctx, "Smartphones")
	require.NoError(t, err)

	require.NoError(t, uc.LinkParent(ctx, phones, electronics))
	require.NoError(t, uc.LinkParent(ctx, smartphones, phones))

	son, err := uc.GetByID(ctx, smartphones)
	require.NoError(t, err)
	require.True(t, son.HasParent(phones))

	parent, err := uc.GetByID(ctx, phones)
	require.NoError(t, err)
	require.Contains(t, parent.Children, smartphones)
}

func TestLinkParentRejectsAncestor(t *testing.T) {
	uc, _ := newCategoryUC()
	ctx := context.Background()

	electronics, _ := uc.AddCategory(ctx, "Electronics")
	phones, _ := uc.AddCategory(ctx, "Phones")
	smartphones, _ := uc.AddCategory(ctx, "Smartphones")

	require.NoError(t, uc.LinkParent(ctx, phones, electronics))
	require.NoError(t, uc.LinkParent(ctx, smartphones, phones))

	// Electronics уже достижим из Smartphones через Phones
	err := uc.LinkParent(ctx, smartphones, electronics)
	require.ErrorIs(t, err, e.ErrInvalidCategoryLink)
}

func TestLinkParentRejectsCycle(t *testing.T) {
	uc, _ := newCategoryUC()
	ctx := context.Background()

	electronics, _ := uc.AddCategory(ctx, "Electronics")
	phones, _ := uc.AddCategory(ctx, "Phones")
	smartphones, _ := uc.AddCategory(ctx, "Smartphones")

	require.NoError(t, uc.LinkParent(ctx, phones, electronics))
	require.NoError(t, uc.LinkParent(ctx, smartphones, phones))

	err := uc.LinkParent(ctx, electronics, smartphones)
	require.ErrorIs(t, err, e.ErrInvalidCategoryLink)
}

func TestLinkParentAllowsMultipleParents(t *testing.T) {
	uc, _ := newCategoryUC()
	ctx := context.Background()

	phones, _ := uc.AddCategory(ctx, "Phones")
	cameras, _ := uc.AddCategory(ctx, "Cameras")
	smartphones, _ := uc.AddCategory(ctx, "Smartphones")

	require.NoError(t, uc.LinkParent(ctx, smartphones, phones))
	require.NoError(t, uc.LinkParent(ctx, smartphones, cameras))

	son, err := uc.GetByID(ctx, smartphones)
	require.NoError(t, err)
	require.True(t, son.HasParent(phones))
	require.True(t, son.HasParent(cameras))
}

func TestLinkParentInvalidArguments(t *testing.T) {
	uc, _ := newCategoryUC()
	ctx := context.Background()

	electronics, _ := uc.AddCategory(ctx, "Electronics")

	require.ErrorIs(t, uc.LinkParent(ctx, electronics, electronics), e.ErrInvalidCategoryLink)
	require.ErrorIs(t, uc.LinkParent(ctx, 0, electronics), e.ErrInvalidCategoryLink)
	require.ErrorIs(t, uc.LinkParent(ctx, electronics, -1), e.ErrInvalidCategoryLink)
	require.ErrorIs(t, uc.LinkParent(ctx, electronics, 42), e.ErrCategoryNotFound)
	require.ErrorIs(t, uc.LinkParent(ctx, 42, electronics), e.ErrCategoryNotFound)
}
