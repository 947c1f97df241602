package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
)

// Handlers bundles the HTTP handlers wired into the route table.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Catalog   *handler.CatalogHandler
	Variation *handler.VariationHandler
	Order     *handler.OrderHandler
	Blog      *handler.BlogHandler
	Coupon    *handler.CouponHandler
}

// New creates the HTTP router with all routes and middleware configured.
func New(h Handlers, auth service.AuthService, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	authed := middleware.JWTAuth(auth, logger)
	admin := middleware.RequireRole(model.RoleAdmin, logger)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", h.Auth.Register)
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh-token", h.Auth.RefreshToken)
			ar.Post("/logout", h.Auth.Logout)
			ar.Get("/forgot-password", h.Auth.ForgotPassword)
			ar.Put("/reset-password", h.Auth.ResetPassword)
		})

		api.Route("/user", func(ur chi.Router) {
			ur.Use(authed)
			ur.Get("/current", h.User.Current)
			ur.Put("/current", h.User.UpdateCurrent)
			ur.Put("/current/avatar", h.User.UpdateAvatar)
			ur.Get("/cart", h.User.Cart)
			ur.Post("/cart", h.User.AddCartLine)
			ur.Delete("/cart/{lineID}", h.User.RemoveCartLine)

			ur.Group(func(ad chi.Router) {
				ad.Use(admin)
				ad.Get("/", h.User.List)
				ad.Put("/{id}/block", h.User.SetBlocked(true))
				ad.Put("/{id}/unblock", h.User.SetBlocked(false))
				ad.Delete("/{id}", h.User.Delete)
			})
		})

		api.Route("/product", func(pr chi.Router) {
			pr.Get("/", h.Product.List)
			pr.Get("/{id}", h.Product.GetByID)

			pr.Group(func(cr chi.Router) {
				cr.Use(authed)
				cr.Put("/{id}/rating", h.Product.Rate)
			})

			pr.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Product.Create)
				ad.Put("/{id}", h.Product.Update)
				ad.Delete("/{id}", h.Product.Delete)
				ad.Put("/{id}/images", h.Product.UploadImages)
			})
		})

		api.Route("/product-detail", func(dr chi.Router) {
			dr.Get("/{id}", h.Product.GetDetail)
			dr.Get("/{id}/configurations", h.Product.ListConfigurations)

			dr.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Product.CreateDetail)
				ad.Put("/{id}", h.Product.UpdateDetail)
				ad.Delete("/{id}", h.Product.DeleteDetail)
			})
		})

		api.Route("/product-configuration", func(cr chi.Router) {
			cr.Use(authed, admin)
			cr.Post("/", h.Product.CreateConfiguration)
			cr.Delete("/{id}", h.Product.DeleteConfiguration)
		})

		api.Route("/category", func(cr chi.Router) {
			cr.Get("/", h.Catalog.ListCategories)
			cr.Get("/{id}", h.Catalog.GetCategory)

			cr.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Catalog.CreateCategory)
				ad.Put("/{id}", h.Catalog.UpdateCategory)
				ad.Delete("/{id}", h.Catalog.DeleteCategory)
			})
		})

		api.Route("/category-item", func(cr chi.Router) {
			cr.Get("/", h.Catalog.ListCategoryItems)

			cr.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Catalog.CreateCategoryItem)
				ad.Delete("/{id}", h.Catalog.DeleteCategoryItem)
			})
		})

		api.Route("/brand", func(br chi.Router) {
			br.Get("/", h.Catalog.ListBrands)

			br.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Catalog.CreateBrand)
				ad.Delete("/{id}", h.Catalog.DeleteBrand)
			})
		})

		api.Route("/variation", func(vr chi.Router) {
			vr.Get("/", h.Variation.ListVariations)

			vr.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Variation.CreateVariation)
				ad.Delete("/{id}", h.Variation.DeleteVariation)
			})
		})

		api.Route("/variation-option", func(vr chi.Router) {
			vr.Get("/", h.Variation.ListOptions)

			vr.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Variation.CreateOption)
				ad.Delete("/{id}", h.Variation.DeleteOption)
			})
		})

		api.Route("/order", func(or chi.Router) {
			or.Use(authed)
			or.Post("/checkout", h.Order.Checkout)
			or.Get("/", h.Order.List)
			or.Get("/{id}", h.Order.GetByID)

			or.Group(func(ad chi.Router) {
				ad.Use(admin)
				ad.Put("/{id}/status", h.Order.UpdateStatus)
			})
		})

		api.Route("/blog", func(br chi.Router) {
			br.Get("/", h.Blog.List)
			br.Get("/{id}", h.Blog.View)

			br.Group(func(cr chi.Router) {
				cr.Use(authed)
				cr.Put("/{id}/like", h.Blog.React(model.ReactionLike))
				cr.Put("/{id}/dislike", h.Blog.React(model.ReactionDislike))
			})

			br.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Blog.Create)
				ad.Put("/{id}", h.Blog.Update)
				ad.Delete("/{id}", h.Blog.Delete)
			})
		})

		api.Route("/blog-category", func(br chi.Router) {
			br.Get("/", h.Blog.ListCategories)

			br.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Blog.CreateCategory)
				ad.Delete("/{id}", h.Blog.DeleteCategory)
			})
		})

		api.Route("/coupon", func(cr chi.Router) {
			cr.Get("/", h.Coupon.List)
			cr.Get("/{id}", h.Coupon.GetByID)

			cr.Group(func(ad chi.Router) {
				ad.Use(authed, admin)
				ad.Post("/", h.Coupon.Create)
				ad.Put("/{id}", h.Coupon.Update)
				ad.Delete("/{id}", h.Coupon.Delete)
			})
		})
	})

	return r
}
