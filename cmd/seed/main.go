// Command seed fills a development database with a small catalogue, an
// admin account and a demo customer. It reuses the application's schema
// migration, so it can run against an empty database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	userRepo := repository.NewUserRepository(pool, logger)
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	varRepo := repository.NewVariationRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	detailRepo := repository.NewProductDetailRepository(pool, logger)
	blogRepo := repository.NewBlogRepository(pool, logger)

	now := time.Now()

	admin, err := seedUser(ctx, userRepo, "admin@storefront.local", "admin123!", "Admin", model.RoleAdmin, now)
	if err != nil {
		return err
	}
	if _, err := seedUser(ctx, userRepo, "customer@storefront.local", "customer1", "Demo Customer", model.RoleCustomer, now); err != nil {
		return err
	}

	category := &model.Category{
		ID:        uuid.New(),
		Name:      "Clothing",
		Slug:      model.Slugify("Clothing"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := catalogRepo.CreateCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to seed category: %w", err)
	}

	item := &model.CategoryItem{
		ID:         uuid.New(),
		Name:       "T-Shirts",
		Slug:       model.Slugify("T-Shirts"),
		CategoryID: &category.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := catalogRepo.CreateCategoryItem(ctx, item); err != nil {
		return fmt.Errorf("failed to seed category item: %w", err)
	}

	brand := &model.Brand{ID: uuid.New(), Name: "Northwind", CreatedAt: now}
	if err := catalogRepo.CreateBrand(ctx, brand); err != nil {
		return fmt.Errorf("failed to seed brand: %w", err)
	}

	colour := &model.Variation{ID: uuid.New(), Name: "Colour", CategoryID: &category.ID}
	if err := varRepo.CreateVariation(ctx, colour); err != nil {
		return fmt.Errorf("failed to seed variation: %w", err)
	}
	for _, value := range []string{"Red", "Blue", "Black"} {
		opt := &model.VariationOption{ID: uuid.New(), Value: value, VariationID: &colour.ID}
		if err := varRepo.CreateOption(ctx, opt); err != nil {
			return fmt.Errorf("failed to seed variation option: %w", err)
		}
	}

	product := &model.Product{
		ID:             uuid.New(),
		Name:           "Classic Tee",
		Slug:           model.Slugify("Classic Tee"),
		Description:    "A plain cotton t-shirt.",
		Price:          19.90,
		BrandID:        &brand.ID,
		CategoryItemID: &item.ID,
		Images:         []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to seed product: %w", err)
	}

	for _, d := range []struct {
		name, color, size string
		price             float64
	}{
		{"Classic Tee Red M", "Red", "M", 19.90},
		{"Classic Tee Blue L", "Blue", "L", 21.90},
	} {
		detail := &model.ProductDetail{
			ID:        uuid.New(),
			Name:      d.name,
			Slug:      model.Slugify(d.name),
			Color:     d.color,
			Size:      d.size,
			Price:     d.price,
			Inventory: 100,
			ProductID: product.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := detailRepo.Create(ctx, detail); err != nil {
			return fmt.Errorf("failed to seed product detail: %w", err)
		}
	}

	blogCat := &model.BlogCategory{ID: uuid.New(), Name: "News"}
	if err := blogRepo.CreateCategory(ctx, blogCat); err != nil {
		return fmt.Errorf("failed to seed blog category: %w", err)
	}
	blog := &model.Blog{
		ID:         uuid.New(),
		Title:      "Welcome to the store",
		Body:       "First post.",
		CategoryID: &blogCat.ID,
		AuthorID:   &admin.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := blogRepo.Create(ctx, blog); err != nil {
		return fmt.Errorf("failed to seed blog: %w", err)
	}

	logger.Info().Msg("seed data written")
	return nil
}

func seedUser(ctx context.Context, repo repository.UserRepository, email, password, name, role string, now time.Time) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return u, nil
}
