package factory

import (
	"errors"

	"github.com/manhunt-game/manhunt-go/internal/dependencies/clock"
	"github.com/manhunt-game/manhunt-go/internal/dependencies/random"
	"github.com/manhunt-game/manhunt-go/internal/services/auth"
	"github.com/manhunt-game/manhunt-go/internal/services/experience"
	"github.com/manhunt-game/manhunt-go/internal/services/match"
	"github.com/manhunt-game/manhunt-go/internal/services/proximity"
	"github.com/manhunt-game/manhunt-go/internal/services/social"
	"github.com/manhunt-game/manhunt-go/internal/storage"
	"github.com/manhunt-game/manhunt-go/internal/storage/memory"
	redisstorage "github.com/manhunt-game/manhunt-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	SocialService     *social.Service
	MatchController   *match.Controller
	ProximityService  *proximity.Service
	ExperienceService *experience.Service
	AuthService       *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config) *App {
	// Create services
	socialService := social.New(store, clk)
	matchController := match.NewController(store, clk, rnd)
	proximityService := proximity.New(store, socialService)
	experienceService := experience.New(store)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		SocialService:     socialService,
		MatchController:   matchController,
		ProximityService:  proximityService,
		ExperienceService: experienceService,
		AuthService:       authService,
	}
}
