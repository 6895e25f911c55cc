package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/config"
	infraCache "fashionmag-backend/internal/infrastructure/cache"
	"fashionmag-backend/internal/infrastructure/database"
	"fashionmag-backend/internal/infrastructure/email"
	"fashionmag-backend/internal/infrastructure/queue"
	"fashionmag-backend/internal/infrastructure/storage"
	"fashionmag-backend/pkg/cache"
	"fashionmag-backend/pkg/jwt"

	analyticsHandler "fashionmag-backend/internal/domains/analytics/handler"
	analyticsRepo "fashionmag-backend/internal/domains/analytics/repository"
	analyticsService "fashionmag-backend/internal/domains/analytics/service"
	authHandler "fashionmag-backend/internal/domains/auth/handler"
	authService "fashionmag-backend/internal/domains/auth/service"
	contentHandler "fashionmag-backend/internal/domains/content/handler"
	contentRepo "fashionmag-backend/internal/domains/content/repository"
	contentService "fashionmag-backend/internal/domains/content/service"
	dashboardHandler "fashionmag-backend/internal/domains/dashboard/handler"
	dashboardService "fashionmag-backend/internal/domains/dashboard/service"
	listingHandler "fashionmag-backend/internal/domains/listing/handler"
	listingService "fashionmag-backend/internal/domains/listing/service"
	mediaHandler "fashionmag-backend/internal/domains/media/handler"
	mediaService "fashionmag-backend/internal/domains/media/service"
	talentHandler "fashionmag-backend/internal/domains/talent/handler"
	talentRepo "fashionmag-backend/internal/domains/talent/repository"
	talentService "fashionmag-backend/internal/domains/talent/service"
	voteHandler "fashionmag-backend/internal/domains/vote/handler"
	voteRepo "fashionmag-backend/internal/domains/vote/repository"
	voteService "fashionmag-backend/internal/domains/vote/service"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ObjectStore is the media backend: MinIO, or memory when MinIO is disabled
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by cmd/api and cmd/worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil with the memory driver
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Storage     ObjectStore
	QueueClient *queue.Client // nil when the queue is disabled

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	TalentRepo    talentRepo.Repository
	VoteRepo      voteRepo.Repository
	ContentRepo   contentRepo.Repository
	AnalyticsRepo analyticsRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	TalentService    talentService.ServiceInterface
	VoteService      voteService.ServiceInterface
	ListingService   listingService.ServiceInterface
	ContentService   contentService.ServiceInterface
	DashboardService dashboardService.ServiceInterface
	AuthService      authService.ServiceInterface
	MediaService     mediaService.ServiceInterface
	AnalyticsService analyticsService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	TalentHandler    *talentHandler.TalentHandler
	VoteHandler      *voteHandler.VoteHandler
	ListingHandler   *listingHandler.ListingHandler
	ContentHandler   *contentHandler.ContentHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	AuthHandler      *authHandler.AuthHandler
	MediaHandler     *mediaHandler.MediaHandler
	AnalyticsHandler *analyticsHandler.AnalyticsHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads configuration from the environment and builds the graph
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return New(cfg)
}

// New builds the graph in order: infrastructure, repositories, services,
// handlers. Each step depends on the previous ones.
func New(cfg *config.Config) (*Container, error) {
	log.Info().
		Str("environment", cfg.App.Environment).
		Str("storage_driver", cfg.App.StorageDriver).
		Msg("Initializing DI container")

	c := &Container{
		Config:     cfg,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry),
	}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	if cfg.App.StorageDriver == DriverPostgres {
		if err := c.initDatabase(); err != nil {
			return nil, err
		}
	}

	// ========================================
	// STEP 2: CACHE, STORAGE, QUEUE
	// ========================================
	c.initCache()

	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	if cfg.Queue.Enabled {
		c.QueueClient = queue.NewClient(cfg.Queue.RedisAddr)
		log.Info().Str("addr", cfg.Queue.RedisAddr).Msg("Task queue client ready")
	}

	// ========================================
	// STEP 3: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	return nil
}

// initCache uses Redis when enabled and reachable. Redis is not critical:
// the in-process cache takes over when it cannot be reached.
func (c *Container) initCache() {
	cfg := c.Config
	if cfg.App.StorageDriver == DriverMemory || !cfg.Redis.Enabled {
		c.Cache = cache.NewMemoryCache()
		log.Info().Msg("Using in-memory cache")
		return
	}

	rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		_ = rc.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}
	c.Cache = rc
}

func (c *Container) initStorage() error {
	cfg := c.Config.MinIO
	if !cfg.Enabled {
		c.Storage = storage.NewMemoryStorage("/media/" + cfg.Bucket)
		log.Info().Msg("MinIO disabled, media kept in memory")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	minioStorage, err := storage.NewMinIOStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init minio: %w", err)
	}
	c.Storage = minioStorage
	return nil
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		talents := talentRepo.NewMemoryRepository()
		c.TalentRepo = talents
		c.VoteRepo = voteRepo.NewMemoryRepository(talents)
		c.ContentRepo = contentRepo.NewMemoryRepository()
		c.AnalyticsRepo = analyticsRepo.NewMemoryRepository()
		return
	}

	pool := c.DB.Pool
	c.TalentRepo = talentRepo.NewPostgresRepository(pool)
	c.VoteRepo = voteRepo.NewPostgresRepository(pool)
	c.ContentRepo = contentRepo.NewPostgresRepository(pool)
	c.AnalyticsRepo = analyticsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	sec := c.Config.Security

	// Without a queue, media cleanup is skipped and reset codes are mailed inline
	var cleaner talentService.MediaCleaner
	var mailer talentService.ResetCodeSender = email.NewEmailService(c.Config.SMTP)
	if c.QueueClient != nil {
		cleaner = c.QueueClient
		mailer = c.QueueClient
	}

	c.TalentService = talentService.NewService(
		c.TalentRepo,
		c.VoteRepo,
		cleaner,
		mailer,
		c.Cache,
		c.JWTManager,
		talentService.Config{
			BcryptCost:       sec.BcryptCost,
			MaxLoginAttempts: sec.MaxLoginAttempts,
			LoginLockout:     sec.LoginLockout,
			ResetCodeTTL:     sec.ResetCodeTTL,
		},
	)
	c.VoteService = voteService.NewService(c.VoteRepo, c.TalentRepo)
	c.ListingService = listingService.NewService(c.TalentRepo)
	c.ContentService = contentService.NewService(c.ContentRepo, c.TalentRepo, c.Cache)
	c.AnalyticsService = analyticsService.NewService(c.AnalyticsRepo, c.TalentRepo, c.ContentRepo)
	c.DashboardService = dashboardService.NewService(c.TalentRepo, c.VoteRepo, c.ContentRepo, c.AnalyticsService)
	c.AuthService = authService.NewService(c.Cache, c.JWTManager, authService.Config{
		Email:            c.Config.Admin.Email,
		PasswordHash:     c.Config.Admin.PasswordHash,
		MaxLoginAttempts: sec.MaxLoginAttempts,
		LoginLockout:     sec.LoginLockout,
	})
	c.MediaService = mediaService.NewService(c.Storage, storage.NewImageProcessor())
}

func (c *Container) initHandlers() {
	c.TalentHandler = talentHandler.NewTalentHandler(c.TalentService)
	c.VoteHandler = voteHandler.NewVoteHandler(c.VoteService)
	c.ListingHandler = listingHandler.NewListingHandler(c.ListingService)
	c.ContentHandler = contentHandler.NewContentHandler(c.ContentService)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.DashboardService)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)
	c.AnalyticsHandler = analyticsHandler.NewAnalyticsHandler(c.AnalyticsService)
}

// ========================================
// LIFECYCLE
// ========================================

// HealthCheck pings the backing stores in use
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"storage_driver": c.Config.App.StorageDriver}

	if c.DB != nil {
		status["database"] = "ok"
		if err := c.DB.HealthCheck(ctx); err != nil {
			status["database"] = "down"
		}
	}

	status["cache"] = "ok"
	if err := c.Cache.Ping(ctx); err != nil {
		status["cache"] = "down"
	}
	return status
}

// Cleanup releases connections during graceful shutdown
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close queue client")
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
