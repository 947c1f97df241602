package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// applies the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Fixture holds the rows SeedCatalog creates, so tests can reference them
// by ID instead of re-querying.
type Fixture struct {
	Admin    *model.User
	Customer *model.User
	Category *model.Category
	Item     *model.CategoryItem
	Brand    *model.Brand
	Product  *model.Product
	Detail   *model.ProductDetail
}

// SeedCatalog inserts a minimal product catalogue plus two users.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) *Fixture {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()
	now := time.Now()

	userRepo := repository.NewUserRepository(pool, logger)
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	detailRepo := repository.NewProductDetailRepository(pool, logger)

	f := &Fixture{}

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	f.Admin = &model.User{
		ID: uuid.New(), Email: "admin@test.local", PasswordHash: string(hash),
		Role: model.RoleAdmin, Name: "Admin", CreatedAt: now, UpdatedAt: now,
	}
	f.Customer = &model.User{
		ID: uuid.New(), Email: "customer@test.local", PasswordHash: string(hash),
		Role: model.RoleCustomer, Name: "Customer", CreatedAt: now, UpdatedAt: now,
	}
	for _, u := range []*model.User{f.Admin, f.Customer} {
		if err := userRepo.Create(ctx, u); err != nil {
			t.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
	}

	f.Category = &model.Category{
		ID: uuid.New(), Name: "Clothing", Slug: "clothing", CreatedAt: now, UpdatedAt: now,
	}
	if err := catalogRepo.CreateCategory(ctx, f.Category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	f.Item = &model.CategoryItem{
		ID: uuid.New(), Name: "T-Shirts", Slug: "t-shirts",
		CategoryID: &f.Category.ID, CreatedAt: now, UpdatedAt: now,
	}
	if err := catalogRepo.CreateCategoryItem(ctx, f.Item); err != nil {
		t.Fatalf("failed to seed category item: %v", err)
	}

	f.Brand = &model.Brand{ID: uuid.New(), Name: "Northwind", CreatedAt: now}
	if err := catalogRepo.CreateBrand(ctx, f.Brand); err != nil {
		t.Fatalf("failed to seed brand: %v", err)
	}

	f.Product = &model.Product{
		ID: uuid.New(), Name: "Classic Tee", Slug: "classic-tee",
		Description: "A plain cotton t-shirt.", Price: 19.90,
		BrandID: &f.Brand.ID, CategoryItemID: &f.Item.ID,
		Images: []string{}, CreatedAt: now, UpdatedAt: now,
	}
	if err := productRepo.Create(ctx, f.Product); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	f.Detail = &model.ProductDetail{
		ID: uuid.New(), Name: "Classic Tee Red M", Slug: "classic-tee-red-m",
		Color: "Red", Size: "M", Price: 19.90, Inventory: 100,
		ProductID: f.Product.ID, CreatedAt: now, UpdatedAt: now,
	}
	if err := detailRepo.Create(ctx, f.Detail); err != nil {
		t.Fatalf("failed to seed product detail: %v", err)
	}

	return f
}

// CleanupDB removes all data from the tables SeedCatalog touches, child
// tables first.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"blog_reactions", "blogs", "blog_categories",
		"order_lines", "orders",
		"cart_lines", "ratings",
		"product_configurations", "product_details", "products",
		"variation_options", "variations",
		"category_items", "brands", "categories",
		"coupons", "users",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
