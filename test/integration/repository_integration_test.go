package integration

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/readmodel"
	"storefront/internal/repository"
)

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCartRepository(testDB.Pool, logger)
	reader := readmodel.NewReader(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Upsert merges lines with the same detail and option list", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		line := &model.CartLine{
			ID:              uuid.New(),
			UserID:          f.Customer.ID,
			ProductDetailID: f.Detail.ID,
			OptionIDs:       []uuid.UUID{},
			Quantity:        2,
			CreatedAt:       time.Now(),
		}
		require.NoError(t, repo.Upsert(ctx, line))

		again := *line
		again.ID = uuid.New()
		again.Quantity = 3
		require.NoError(t, repo.Upsert(ctx, &again))

		lines, err := reader.CartForUser(ctx, f.Customer.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("Delete is scoped to the owning user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		line := &model.CartLine{
			ID:              uuid.New(),
			UserID:          f.Customer.ID,
			ProductDetailID: f.Detail.ID,
			OptionIDs:       []uuid.UUID{},
			Quantity:        1,
			CreatedAt:       time.Now(),
		}
		require.NoError(t, repo.Upsert(ctx, line))

		found, err := repo.Delete(ctx, f.Admin.ID, line.ID)
		require.NoError(t, err)
		assert.False(t, found)

		found, err = repo.Delete(ctx, f.Customer.ID, line.ID)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("cart line with a deleted detail is dropped from the view", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		line := &model.CartLine{
			ID:              uuid.New(),
			UserID:          f.Customer.ID,
			ProductDetailID: f.Detail.ID,
			OptionIDs:       []uuid.UUID{},
			Quantity:        1,
			CreatedAt:       time.Now(),
		}
		require.NoError(t, repo.Upsert(ctx, line))

		detailRepo := repository.NewProductDetailRepository(testDB.Pool, logger)
		found, err := detailRepo.Delete(ctx, f.Detail.ID)
		require.NoError(t, err)
		require.True(t, found)

		lines, err := reader.CartForUser(ctx, f.Customer.ID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestCatalogRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCatalogRepository(testDB.Pool, logger)
	reader := readmodel.NewReader(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("deleting a referenced category leaves the item dangling", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		found, err := repo.DeleteCategory(ctx, f.Category.ID)
		require.NoError(t, err)
		require.True(t, found)

		// the item row survives with its now-dangling reference
		item, err := repo.GetCategoryItem(ctx, f.Item.ID)
		require.NoError(t, err)
		require.NotNil(t, item)
		require.NotNil(t, item.CategoryID)
		assert.Equal(t, f.Category.ID, *item.CategoryID)

		// the composed view resolves the dangling reference to null
		view, err := reader.ProductByID(ctx, f.Product.ID)
		require.NoError(t, err)
		require.NotNil(t, view)
		require.NotNil(t, view.CategoryItem)
		assert.Equal(t, "T-Shirts", view.CategoryItem.Name)
		assert.Nil(t, view.CategoryItem.Category)
	})

	t.Run("deleting a referenced brand resolves the product's brand to null", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		found, err := repo.DeleteBrand(ctx, f.Brand.ID)
		require.NoError(t, err)
		require.True(t, found)

		view, err := reader.ProductByID(ctx, f.Product.ID)
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Nil(t, view.Brand)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)
	reader := readmodel.NewReader(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("UpsertRating replaces the star and recomputes the total", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		total, err := repo.UpsertRating(ctx, &model.Rating{
			ProductID: f.Product.ID, UserID: f.Customer.ID, Star: 4, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.InDelta(t, 4.0, total, 0.001)

		total, err = repo.UpsertRating(ctx, &model.Rating{
			ProductID: f.Product.ID, UserID: f.Admin.ID, Star: 2, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.InDelta(t, 3.0, total, 0.001)

		// resubmission replaces, not appends
		total, err = repo.UpsertRating(ctx, &model.Rating{
			ProductID: f.Product.ID, UserID: f.Customer.ID, Star: 2, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, total, 0.001)
	})

	t.Run("ProductByID resolves brand and category item references", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		view, err := reader.ProductByID(ctx, f.Product.ID)
		require.NoError(t, err)
		require.NotNil(t, view)
		require.NotNil(t, view.Brand)
		assert.Equal(t, "Northwind", view.Brand.Name)
		require.NotNil(t, view.CategoryItem)
		assert.Equal(t, "T-Shirts", view.CategoryItem.Name)
	})

	t.Run("ProductPage filters by price range", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		expensive := &model.Product{
			ID: uuid.New(), Name: "Premium Tee", Slug: "premium-tee",
			Price: 120, BrandID: &f.Brand.ID, CategoryItemID: &f.Item.ID,
			Images: []string{}, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, expensive))

		opts := query.Parse(url.Values{"price": {"100,200"}}, readmodel.ProductListing)
		views, total, err := reader.ProductPage(ctx, opts)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, views, 1)
		assert.Equal(t, "Premium Tee", views[0].Name)
	})

	t.Run("duplicate slug is rejected as a conflict", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		dup := &model.Product{
			ID: uuid.New(), Name: f.Product.Name, Slug: f.Product.Slug,
			Price: 10, BrandID: &f.Brand.ID, CategoryItemID: &f.Item.ID,
			Images: []string{}, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		err := repo.Create(ctx, dup)
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeConflict, domainErr.Code)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)
	reader := readmodel.NewReader(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("CreateWithLines persists order and lines atomically", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		now := time.Now()
		order := &model.Order{
			ID:        uuid.New(),
			OrderBy:   f.Customer.ID,
			Status:    model.StatusWaitingDelivery,
			CreatedAt: now,
			UpdatedAt: now,
		}
		lines := []model.OrderLine{
			{ID: uuid.New(), OrderID: order.ID, ProductDetailID: f.Detail.ID, Quantity: 2},
		}
		require.NoError(t, repo.CreateWithLines(ctx, order, lines))

		view, err := reader.OrderByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, f.Customer.ID, view.OrderBy)
		assert.Equal(t, model.StatusWaitingDelivery, view.Status)
		require.Len(t, view.Lines, 1)
		require.NotNil(t, view.Lines[0].ProductDetail)
		assert.Equal(t, 2, view.Lines[0].Quantity)
	})

	t.Run("UpdateStatus reports missing orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		found, err := repo.UpdateStatus(ctx, uuid.New(), model.StatusDelivering)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("OrdersForUser only returns the caller's orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		now := time.Now()
		for _, owner := range []uuid.UUID{f.Customer.ID, f.Admin.ID} {
			order := &model.Order{
				ID: uuid.New(), OrderBy: owner, Status: model.StatusWaitingDelivery,
				CreatedAt: now, UpdatedAt: now,
			}
			require.NoError(t, repo.CreateWithLines(ctx, order, []model.OrderLine{
				{ID: uuid.New(), OrderID: order.ID, ProductDetailID: f.Detail.ID, Quantity: 1},
			}))
		}

		opts := query.Parse(url.Values{}, readmodel.OrderListing)
		views, total, err := reader.OrdersForUser(ctx, f.Customer.ID, opts)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, views, 1)
		assert.Equal(t, f.Customer.ID, views[0].OrderBy)
	})
}

func TestBlogRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewBlogRepository(testDB.Pool, logger)

	ctx := context.Background()

	seedBlog := func(t *testing.T, f *Fixture) *model.Blog {
		t.Helper()
		now := time.Now()
		b := &model.Blog{
			ID: uuid.New(), Title: "Hello", Body: "World",
			AuthorID: &f.Admin.ID, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, repo.Create(ctx, b))
		return b
	}

	t.Run("React toggles and switches reactions", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)
		b := seedBlog(t, f)

		likes, dislikes, err := repo.React(ctx, b.ID, f.Customer.ID, model.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, 1, likes)
		assert.Equal(t, 0, dislikes)

		// same reaction again removes it
		likes, dislikes, err = repo.React(ctx, b.ID, f.Customer.ID, model.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, 0, likes)
		assert.Equal(t, 0, dislikes)

		// opposite reaction replaces
		_, _, err = repo.React(ctx, b.ID, f.Customer.ID, model.ReactionLike)
		require.NoError(t, err)
		likes, dislikes, err = repo.React(ctx, b.ID, f.Customer.ID, model.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, 0, likes)
		assert.Equal(t, 1, dislikes)
	})

	t.Run("IncrementViews is cumulative", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)
		b := seedBlog(t, f)

		require.NoError(t, repo.IncrementViews(ctx, b.ID))
		require.NoError(t, repo.IncrementViews(ctx, b.ID))

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.Views)
	})
}

func TestConfigurationRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewConfigurationRepository(testDB.Pool, logger)
	varRepo := repository.NewVariationRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("duplicate option set per detail is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedCatalog(t, testDB.Pool)

		variation := &model.Variation{ID: uuid.New(), Name: "Colour", CategoryID: &f.Category.ID}
		require.NoError(t, varRepo.CreateVariation(ctx, variation))
		option := &model.VariationOption{ID: uuid.New(), Value: "Red", VariationID: &variation.ID}
		require.NoError(t, varRepo.CreateOption(ctx, option))

		first := &model.ProductConfiguration{
			ID:              uuid.New(),
			ProductDetailID: f.Detail.ID,
			OptionIDs:       []uuid.UUID{option.ID},
		}
		require.NoError(t, repo.Create(ctx, first))

		dup := &model.ProductConfiguration{
			ID:              uuid.New(),
			ProductDetailID: f.Detail.ID,
			OptionIDs:       []uuid.UUID{option.ID},
		}
		err := repo.Create(ctx, dup)
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeConflict, domainErr.Code)
	})
}
