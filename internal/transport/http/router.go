package http

import (
	"net/http"
	"time"

	"fooddelivery/internal/authz"
	"fooddelivery/internal/domain"
	"fooddelivery/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	FrontendEndpoint string
}

func NewRouter(
	auth service.AuthService,
	catalog service.CatalogService,
	orders service.OrderService,
	mw *authz.Middleware,
	cfg RouterConfig,
) http.Handler {
	ah := &authHandler{auth: auth, frontend: cfg.FrontendEndpoint}
	ch := &catalogHandler{catalog: catalog}
	oh := &orderHandler{orders: orders}

	requireAdmin := authz.RequireRole(domain.RoleAdmin)

	r := chi.NewRouter()

	// rate limit (100 req / minute by IP)
	r.Use(httprate.LimitByIP(100, 1*time.Minute))

	// CORS: the frontend calls cross-origin and the cookie path needs
	// credentials.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendEndpoint},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-up", ah.signup)
		r.Get("/verify-user", ah.verifyUser)
		r.Post("/sign-in", ah.signin)
		r.Get("/refresh", ah.refresh)
		r.Post("/reset-password-request", ah.resetPasswordRequest)
		r.Get("/verify-reset-password-request", ah.verifyResetRequest)
		r.Post("/reset-password", ah.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate, requireAdmin)
			r.Patch("/promote-to-admin/{userId}", ah.promoteToAdmin)
			r.Patch("/demote-to-user/{userId}", ah.demoteToUser)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.Authenticate, requireAdmin)
		r.Get("/users", ah.listUsers)
		r.Get("/stats", ah.stats)
	})

	r.Route("/food-category", func(r chi.Router) {
		r.Get("/", ch.listCategories)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate, requireAdmin)
			r.Post("/", ch.createCategory)
			r.Patch("/{id}", ch.updateCategory)
			r.Delete("/{id}", ch.deleteCategory)
		})
	})

	r.Route("/food", func(r chi.Router) {
		r.Get("/", ch.listFoods)
		r.Get("/{id}", ch.getFood)
		r.Get("/category/{categoryId}", ch.listFoodsByCategory)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate, requireAdmin)
			r.Post("/", ch.createFood)
			r.Patch("/{id}", ch.updateFood)
			r.Delete("/{id}", ch.deleteFood)
		})
	})

	r.Route("/food-order", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)
			r.Post("/", oh.createOrder)
			r.Get("/mine", oh.listMyOrders)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate, requireAdmin)
			r.Get("/", oh.listAllOrders)
			r.Patch("/{id}/status", oh.updateOrderStatus)
		})
	})

	return r
}
