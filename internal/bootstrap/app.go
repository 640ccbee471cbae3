package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"cvenhancer-backend/internal/account"
	googleauth "cvenhancer-backend/internal/auth"
	"cvenhancer-backend/internal/enhance"
	"cvenhancer-backend/internal/history"
	"cvenhancer-backend/internal/llm"
	openai "cvenhancer-backend/internal/llm/openai"
	openrouter "cvenhancer-backend/internal/llm/openrouter"
	"cvenhancer-backend/internal/shared/config"
	"cvenhancer-backend/internal/shared/server"
	"cvenhancer-backend/internal/shared/storage/db"
	"cvenhancer-backend/internal/shared/telemetry"
	"cvenhancer-backend/internal/usage"
	"cvenhancer-backend/internal/users"
)

// App holds shared dependencies constructed once at process start.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo   users.Repo
	HistoryRepo history.Repo

	UsersService   *users.Service
	UsageService   *usage.Service
	AccountService *account.Service
	EnhanceService *enhance.Service

	EnhanceHandler *enhance.Handler
	HistoryHandler *history.Handler
	UsageHandler   *usage.Handler
	UsersHandler   *users.Handler
	AccountHandler *account.Handler
	GoogleAuth     *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		EnhanceHandler: app.EnhanceHandler,
		HistoryHandler: app.HistoryHandler,
		UsageHandler:   app.UsageHandler,
		UsersHandler:   app.UsersHandler,
		AccountHandler: app.AccountHandler,
		GoogleAuth:     app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db", map[string]any{
				"msg": "DATABASE_URL empty; using in-memory repositories",
			})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db", map[string]any{
				"msg": "database connect failed; using in-memory repositories",
				"err": err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db", map[string]any{
				"msg": "migrations failed; using in-memory repositories",
				"err": err.Error(),
			})
			_ = sqlDB.Close()
			return nil, nil
		}
		_ = sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openrouter":
		if strings.TrimSpace(cfg.OpenRouterKey) == "" {
			return llm.PlaceholderClient{}, nil
		}
		return openrouter.NewClient(cfg.OpenRouterKey, cfg.LLMTimeout)
	default:
		if strings.TrimSpace(cfg.OpenAIKey) == "" {
			return llm.PlaceholderClient{}, nil
		}
		return openai.NewClient(cfg.OpenAIKey, cfg.LLMTimeout)
	}
}

func buildServices(app *App) error {
	cfg := app.Config

	var userRepo users.Repo
	var historyRepo history.Repo
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		historyRepo = &history.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		historyRepo = history.NewMemoryRepo()
	}

	var usageSvc *usage.Service
	if app.DB != nil {
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		usageSvc = usage.NewService()
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return err
	}

	shape, err := enhance.ParseShape(cfg.PipelineShape)
	if err != nil {
		return fmt.Errorf("PIPELINE_SHAPE: %w", err)
	}

	enhanceSvc := &enhance.Service{
		LLM:          llmClient,
		EconomyModel: cfg.EconomyModel,
		PremiumModel: cfg.PremiumModel,
		Shape:        shape,
	}

	userSvc := users.NewService(userRepo)
	accountSvc := account.NewService(historyRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	app.UsersRepo = userRepo
	app.HistoryRepo = historyRepo
	app.UsersService = userSvc
	app.UsageService = usageSvc
	app.AccountService = accountSvc
	app.EnhanceService = enhanceSvc
	app.EnhanceHandler = enhance.NewHandler(enhanceSvc, usageSvc, historyRepo, cfg.LLMProvider, cfg.Env)
	app.HistoryHandler = history.NewHandler(historyRepo)
	app.UsageHandler = usage.NewHandler(usageSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.AccountHandler = account.NewHandler(accountSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
