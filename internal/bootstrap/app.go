package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"docassist/internal/analyses"
	"docassist/internal/classify"
	"docassist/internal/documents"
	"docassist/internal/feedback"
	"docassist/internal/industries"
	"docassist/internal/industry"
	"docassist/internal/remote"
	"docassist/internal/report"
	"docassist/internal/shared/config"
	"docassist/internal/shared/server"
	"docassist/internal/shared/storage/db"
	"docassist/internal/shared/storage/object"
	localstore "docassist/internal/shared/storage/object/local"
	s3store "docassist/internal/shared/storage/object/s3"
	"docassist/internal/shared/telemetry"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	Catalog *industry.Catalog
	Engine  *report.Engine
	Remote  *remote.Client

	DocumentsRepo documents.DocumentsRepo
	AnalysesRepo  analyses.Repo
	FeedbackRepo  feedback.Repo

	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	FeedbackService  *feedback.Service

	DocumentsHandler  *documents.Handler
	AnalysesHandler   *analyses.Handler
	FeedbackHandler   *feedback.Handler
	IndustriesHandler *industries.Handler
}

// Build prepares dependencies and registers routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	engine, catalog, err := BuildEngine(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Catalog: catalog,
		Engine:  engine,
		Remote:  remote.NewClient(cfg.RemoteAnalysisURL, cfg.RemoteAnalysisTimeout, catalog),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		CatalogVersion:    catalog.Version(),
		DocumentsHandler:  app.DocumentsHandler,
		AnalysesHandler:   app.AnalysesHandler,
		FeedbackHandler:   app.FeedbackHandler,
		IndustriesHandler: app.IndustriesHandler,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":            cfg.Env,
		"store":          store.Provider(),
		"database":       sqlDB != nil,
		"catalogVersion": catalog.Version(),
		"industries":     catalog.Len(),
		"remote":         app.Remote.Configured(),
	})
	return app, nil
}

// BuildEngine loads the industry catalog and assembles the cached classifier
// and report synthesizer. The CLI uses it without any storage.
func BuildEngine(cfg config.Config) (*report.Engine, *industry.Catalog, error) {
	catalog := industry.Default()
	if path := strings.TrimSpace(cfg.IndustryCatalogPath); path != "" {
		loaded, err := industry.LoadFile(path)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "load industry catalog %s", path)
		}
		catalog = loaded
	}

	cached, err := classify.NewCached(classify.New(catalog), cfg.ClassifyCacheSize)
	if err != nil {
		return nil, nil, eris.Wrap(err, "build classifier cache")
	}
	return report.NewEngine(cached, report.NewSynthesizer(catalog)), catalog, nil
}

var (
	connectDB = db.Connect
	migrateDB = db.RunMigrations
)

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, eris.New("DATABASE_URL is required")
	}

	var (
		sqlDB     *sql.DB
		err       error
		singleton = db.IsLambdaRuntime()
	)
	if singleton {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = connectDB(ctx, cfg.DatabaseURL, opts)
	}
	if err == nil {
		if err = migrateDB(ctx, sqlDB); err != nil && !singleton {
			// The pool is ours; the Lambda singleton is shared across invocations.
			if cerr := sqlDB.Close(); cerr != nil {
				telemetry.Warn("bootstrap.db.close", map[string]any{"error": cerr})
			}
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var docRepo documents.DocumentsRepo
	var analysisRepo analyses.Repo
	var feedbackRepo feedback.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
		feedbackRepo = &feedback.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		feedbackRepo = feedback.NewMemoryRepo()
	}

	analysisSvc := analyses.NewService(app.Engine, analysisRepo, app.Remote)
	docSvc := documents.NewService(app.Store, docRepo)
	feedbackSvc := feedback.NewService(feedbackRepo, analysisSvc)
	analysisSvc.Feedback = feedbackSvc

	app.DocumentsRepo = docRepo
	app.AnalysesRepo = analysisRepo
	app.FeedbackRepo = feedbackRepo
	app.DocumentsService = docSvc
	app.AnalysesService = analysisSvc
	app.FeedbackService = feedbackSvc
	app.DocumentsHandler = documents.NewHandler(docSvc, documents.Hooks{
		Analyze:  analysisSvc.AnalyzeDocument,
		Keywords: analysisSvc.DocumentKeywords,
		History:  analysisSvc.DocumentHistory,
	})
	app.AnalysesHandler = analyses.NewHandler(analysisSvc)
	app.FeedbackHandler = feedback.NewHandler(feedbackSvc)
	app.IndustriesHandler = industries.NewHandler(app.Catalog, app.Engine)
}
