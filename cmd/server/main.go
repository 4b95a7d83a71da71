package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fooddelivery/internal/authz"
	"fooddelivery/internal/config"
	"fooddelivery/internal/mail"
	"fooddelivery/internal/observability/logging"
	"fooddelivery/internal/observability/metrics"
	obsmw "fooddelivery/internal/observability/middleware"
	"fooddelivery/internal/password"
	"fooddelivery/internal/service"
	impl "fooddelivery/internal/service/impl"
	"fooddelivery/internal/store"
	"fooddelivery/internal/token"
	httpx "fooddelivery/internal/transport/http"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "fooddelivery",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	cfg := config.Load()
	metrics.MustRegister()

	// Stores
	var (
		users      service.UserDirectory
		categories service.CategoryStore
		foods      service.FoodStore
		orders     service.OrderStore
	)
	if cfg.InMemoryStore {
		logger.Warn("using in-memory store, data will not survive restarts")
		mem := store.NewMemoryStore()
		users = mem.Users()
		categories = mem.Categories()
		foods = mem.Foods()
		orders = mem.Orders()
	} else {
		st, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("db open", "error", err)
			os.Exit(1)
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			logger.Error("db ping", "error", err)
			os.Exit(1)
		}
		if err := st.RunMigrations(ctx); err != nil {
			logger.Error("db migrate", "error", err)
			os.Exit(1)
		}
		users = st.Users()
		categories = st.Categories()
		foods = st.Foods()
		orders = st.Orders()
	}

	// Collaborators
	hasher := password.NewHasher()
	codec := token.NewCodec(token.Config{
		Issuer:     cfg.Issuer,
		SigningKey: []byte(cfg.SigningKey),
	})
	mailer, err := mail.NewClient(mail.Config{
		Host: cfg.SMTPHost,
		User: cfg.EmailUser,
		Pass: cfg.EmailPass,
	})
	if err != nil {
		logger.Error("mail client", "error", err)
		os.Exit(1)
	}
	if !mailer.IsEnabled() {
		logger.Warn("mail disabled, verification and reset links will not be delivered")
	}

	// Services
	auth := impl.NewAuthServiceImpl(users, hasher, codec, mailer, impl.AuthConfig{
		SessionTTL:     cfg.SessionTTL,
		VerifyTokenTTL: cfg.VerifyTokenTTL,
		ResetTokenTTL:  cfg.ResetTokenTTL,
		AccountTTL:     cfg.AccountTTL,
		BackendURL:     cfg.BackendURL,
	})
	catalog := impl.NewCatalogServiceImpl(categories, foods)
	orderSvc := impl.NewOrderServiceImpl(orders, foods)

	mw := authz.NewMiddleware(codec, users)

	router := httpx.NewRouter(auth, catalog, orderSvc, mw, httpx.RouterConfig{
		FrontendEndpoint: cfg.FrontendEndpoint,
	})
	handler := obsmw.WithRequestID(obsmw.WithMetrics(router))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
