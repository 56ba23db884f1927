package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/infrastructure/auth"
	"github.com/deskhub/deskhub/internal/infrastructure/config"
	"github.com/deskhub/deskhub/internal/infrastructure/permission"
	"github.com/deskhub/deskhub/internal/infrastructure/pubsub"
	"github.com/deskhub/deskhub/internal/infrastructure/ratelimit"
	"github.com/deskhub/deskhub/internal/infrastructure/scheduler"
	"github.com/deskhub/deskhub/internal/infrastructure/services"
	"github.com/deskhub/deskhub/internal/infrastructure/storage"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/services/sanitizer"
)

// Container holds the infrastructure, repositories, use cases, handlers and
// background services, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	uploadLimiter        *middleware.RateLimiter
	connectLimiter       *middleware.RateLimiter

	// Shared services
	jwtSvc    *auth.JWTService
	enforcer  *permission.Enforcer
	sanitizer *sanitizer.Service
	files     *storage.LocalFileStore

	// Realtime and background
	hub              *services.Hub
	relay            *pubsub.RedisEventRelay
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, hub, shared services
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Background jobs and hub callbacks
	if err := c.initBackground(); err != nil {
		return nil, err
	}

	// Section 4: Handlers and middlewares
	c.initHandlers()
	c.initMiddlewares()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	c.repos = newRepositories(c.db, c.log)

	c.hub = services.NewHub(c.cfg.Realtime.Delivery, c.cfg.Realtime.SendBuffer, c.log.With("component", "hub"))

	if c.cfg.Redis.Enabled {
		client, err := initRedis(c.cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
		c.relay = pubsub.NewRedisEventRelay(client, c.cfg.Redis.Channel, c.log.With("component", "relay"))
		c.hub.SetRelay(c.relay)
	}

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if c.cfg.Permission.SeedDefaults {
		if err := permission.InitDefaultPermissions(enforcer, c.log); err != nil {
			return err
		}
	}
	c.enforcer = enforcer

	c.sanitizer = sanitizer.New()

	files, err := storage.NewLocalFileStore(
		c.cfg.Storage.UploadDir,
		c.cfg.Storage.MaxSizeMB,
		c.cfg.Storage.AllowedTypes,
		c.log.With("component", "storage"),
	)
	if err != nil {
		return fmt.Errorf("failed to create file store: %w", err)
	}
	c.files = files

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client, nil
}

func (c *Container) initBackground() error {
	presence := c.ucs.updatePresenceUC
	c.hub.SetOnActorOffline(func(actorID uint) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = presence.MarkOffline(ctx, actorID)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := c.ucs.shiftUC.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed default shifts: %w", err)
	}

	if !c.cfg.Scheduler.Enabled {
		return nil
	}
	manager, err := scheduler.NewSchedulerManager(c.log.With("component", "scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterArchiveJob(c.ucs.archiveStaleUC, c.cfg.Scheduler.ArchiveInterval()); err != nil {
		return fmt.Errorf("failed to register archive job: %w", err)
	}
	c.schedulerManager = manager
	return nil
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	if c.redis == nil {
		return
	}
	if n := c.cfg.RateLimit.UploadsPerMinute; n > 0 {
		c.uploadLimiter = middleware.NewRateLimiter(
			ratelimit.NewLimiter(c.redis, "uploads", ratelimit.Window{Duration: time.Minute, Limit: n}),
			c.log,
		)
	}
	if n := c.cfg.RateLimit.ConnectsPerMinute; n > 0 {
		c.connectLimiter = middleware.NewRateLimiter(
			ratelimit.NewLimiter(c.redis, "ws", ratelimit.Window{Duration: time.Minute, Limit: n}),
			c.log,
		)
	}
}

// RunBackground runs the relay subscriber and the scheduler until ctx is
// done.
func (c *Container) RunBackground(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if c.relay != nil {
		g.Go(func() error {
			err := c.relay.Subscribe(ctx, func(e events.Event) {
				c.hub.Deliver(e)
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		})
	}

	if c.schedulerManager != nil {
		g.Go(func() error {
			return c.schedulerManager.Run(ctx)
		})
	}

	return g.Wait()
}

// Shutdown releases what the container opened. The database is closed by
// its owner.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
