package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/config"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/handler"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/infra/bundle"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/infra/db"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/infra/memory"
	infraRepo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/infra/repository"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/platform/observability"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/server"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OtelEndpoint)
	if err != nil {
		logger.Fatal("tracing setup failed", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	//Repository生成（postgres / memory）
	shirts, tx, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal("storage setup failed", zap.Error(err))
	}

	files := bundle.NewFileBundle(cfg.FilesDir)
	obs := observability.NewZapObserver(logger)
	clock := &realClock{}

	//Usecase生成
	stockUC := usecase.NewStockUsecase(shirts, tx, files, obs, nil)
	orderUC := usecase.NewOrderUsecase(tx, files, obs, clock, nil)

	//Handler生成
	exposeInternal := !cfg.IsProd()
	stockH := handler.NewStockHandler(stockUC, clock, exposeInternal)
	orderH := handler.NewOrderHandler(orderUC, clock, exposeInternal)

	e := server.New(server.Deps{
		Stock:             stockH,
		Orders:            orderH,
		Logger:            logger,
		OperatorJWTSecret: cfg.OperatorJWTSecret,
	})

	//Server起動
	logger.Info("server starting",
		zap.String("addr", cfg.ListenAddr()),
		zap.String("storage", cfg.StorageDriver),
		zap.String("files_dir", cfg.FilesDir),
		zap.Bool("operator_auth", cfg.OperatorJWTSecret != ""),
	)
	if err := server.Start(ctx, cfg.ListenAddr(), e); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildStore(cfg config.Config, logger *zap.Logger) (repo.ShirtRepository, repo.TransactionManager, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore()
		if cfg.SeedDemoData {
			memory.SeedDemo(store)
			logger.Info("demo data loaded")
		}
		return store.Shirts(), store, nil
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, nil, err
	}
	return infraRepo.NewShirtGormRepository(gormDB), infraRepo.NewTxManagerGorm(gormDB), nil
}
