package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cosmetick/config"
	"cosmetick/internal/api/admin"
	"cosmetick/internal/api/catalog"
	"cosmetick/internal/api/product"
	"cosmetick/internal/api/router"
	"cosmetick/internal/api/user"
	"cosmetick/internal/api/wishlist"
	"cosmetick/internal/pkg/cache"
	"cosmetick/internal/pkg/database"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/pkg/storage"
	"cosmetick/internal/pkg/token"
	"cosmetick/internal/repository/catalogrepo"
	"cosmetick/internal/repository/productrepo"
	"cosmetick/internal/repository/userrepo"
	"cosmetick/internal/repository/wishlistrepo"
	"cosmetick/internal/service/catalogservice"
	"cosmetick/internal/service/productservice"
	"cosmetick/internal/service/userservice"
	"cosmetick/internal/service/wishlistservice"
)

func main() {
	// .env é opcional: em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)

	log.Info("Iniciando a API Cosmetick...", map[string]interface{}{
		"environment": cfg.Environment,
		"port":        cfg.Port,
	})

	// 1. Infraestrutura: PostgreSQL, Redis, Cloudinary, JWT.
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Falha ao conectar ao PostgreSQL.", err)
	}
	defer db.Close()

	cacheClient := cache.NewRedisClient(cfg.RedisAddr)

	storageClient, err := storage.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatal("❌ Falha ao inicializar o armazenamento de imagens.", err)
	}

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 2. Repositórios.
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, cfg.PlaceholderMarker, log)
	catalogRepo := catalogrepo.NewCatalogRepository(db, cfg.DBTimeout, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	wishlistRepo := wishlistrepo.NewWishlistRepository(db, cfg.DBTimeout, log)

	// 3. Serviços.
	productSvc := productservice.NewProductService(productRepo, storageClient, cfg.DefaultPageLimit, cfg.PlaceholderMarker, log)
	catalogSvc := catalogservice.NewCatalogService(catalogRepo, storageClient, cacheClient, cfg.CacheTTL, log)
	userSvc := userservice.NewUserService(userRepo, tokenSvc, log)
	wishlistSvc := wishlistservice.NewWishlistService(wishlistRepo, log)

	// 4. Handlers e roteador.
	handler := router.New(router.Deps{
		Products:  product.NewHandler(productSvc, log),
		Users:     user.NewHandler(userSvc, log),
		Catalog:   catalog.NewHandler(catalogSvc, log),
		Wishlist:  wishlist.NewHandler(wishlistSvc, log),
		Admin:     admin.NewHandler(productSvc, catalogSvc, log),
		TokenSvc:  tokenSvc,
		Cache:     cacheClient,
		Logger:    log,
		RateLimit: cfg.RateLimitMaxRequests,
		RatePer:   cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Sobe o servidor numa goroutine para não bloquear o shutdown.
	go func() {
		log.Info("✅ Servidor HTTP ouvindo.", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Falha no servidor HTTP.", err)
		}
	}()

	// 6. Graceful shutdown: espera SIGINT/SIGTERM e drena as requisições.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Encerrando o servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Falha no shutdown do servidor.", err)
	}

	log.Info("Servidor encerrado.", nil)
}
