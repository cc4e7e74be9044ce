package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ddb-stock/internal/application/location"
	"github.com/jhoicas/ddb-stock/internal/application/lookup"
	"github.com/jhoicas/ddb-stock/internal/application/stock"
	"github.com/jhoicas/ddb-stock/internal/application/usecase"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
	infralookup "github.com/jhoicas/ddb-stock/internal/infrastructure/lookup"
	"github.com/jhoicas/ddb-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/ddb-stock/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/ddb-stock/internal/interfaces/http"
	"github.com/jhoicas/ddb-stock/pkg/config"
	"github.com/jhoicas/ddb-stock/pkg/logger"
)

// store repos y runner del backend elegido.
type store struct {
	produits     repository.ProduitRepository
	emplacements repository.EmplacementRepository
	articles     repository.ArticleRepository
	txRunner     location.TxRunner
	ping         func(ctx context.Context) error
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
	}
	defer st.close()

	produitUC := usecase.NewProduitUseCase(st.produits, st.articles)
	locationUC := location.NewUseCase(st.emplacements, st.articles, st.txRunner)
	stockUC := stock.NewUseCase(st.articles, st.produits, st.emplacements)

	// Cadena de proveedores: OpenFoodFacts primero (sin clave), Barcodelookup después.
	httpClient := &http.Client{Timeout: cfg.Lookup.Timeout}
	resolver := lookup.NewResolver(cfg.Lookup.Timeout, log,
		infralookup.NewOpenFoodFacts(cfg.Lookup.OpenFoodFactsURL, httpClient),
		infralookup.NewBarcodeLookup(cfg.Lookup.BarcodeLookupURL, cfg.Lookup.BarcodeLookupAPIKey, httpClient),
	)
	if cfg.Lookup.BarcodeLookupAPIKey == "" {
		log.Warn().Msg("LOOKUP_BARCODELOOKUP_API_KEY vacío: Barcodelookup fallará y se saltará")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.CORS(cfg.HTTP.CORSOrigins))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := st.ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProduitUC:  produitUC,
		LocationUC: locationUC,
		StockUC:    stockUC,
		Resolver:   resolver,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre el backend según STORAGE_DRIVER y aplica el esquema.
func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	dsn := cfg.StorageDSN()
	if cfg.Storage.Driver == config.DriverPostgres {
		if err := postgres.Migrate(dsn); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &store{
			produits:     postgres.NewProduitRepository(pool),
			emplacements: postgres.NewEmplacementRepository(pool),
			articles:     postgres.NewArticleRepository(pool),
			txRunner:     postgres.NewTxRunner(pool),
			ping:         pool.Ping,
			close:        pool.Close,
		}, nil
	}

	db, err := sqlite.Open(dsn, cfg.App.LogLevel == "debug" || cfg.App.LogLevel == "trace")
	if err != nil {
		return nil, err
	}
	return &store{
		produits:     sqlite.NewProduitRepository(db),
		emplacements: sqlite.NewEmplacementRepository(db),
		articles:     sqlite.NewArticleRepository(db),
		txRunner:     sqlite.NewTxRunner(db),
		ping:         func(ctx context.Context) error { return sqlite.Ping(ctx, db) },
		close:        func() { _ = sqlite.Close(db) },
	}, nil
}
