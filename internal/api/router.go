package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manhunt-game/manhunt-go/internal/api/handler"
	"github.com/manhunt-game/manhunt-go/internal/api/middleware"
	"github.com/manhunt-game/manhunt-go/internal/api/response"
	"github.com/manhunt-game/manhunt-go/internal/dependencies/clock"
	"github.com/manhunt-game/manhunt-go/internal/services/auth"
	"github.com/manhunt-game/manhunt-go/internal/services/experience"
	"github.com/manhunt-game/manhunt-go/internal/services/match"
	"github.com/manhunt-game/manhunt-go/internal/services/proximity"
	"github.com/manhunt-game/manhunt-go/internal/services/social"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	Clock             clock.Clock
	AuthService       *auth.Service
	SocialService     social.ServiceInterface
	MatchController   match.ControllerInterface
	ProximityService  proximity.ServiceInterface
	ExperienceService experience.ServiceInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	friendHandler := handler.NewFriendHandler(cfg.SocialService)
	matchHandler := handler.NewMatchHandler(cfg.MatchController, cfg.ExperienceService, cfg.AuthService)
	proximityHandler := handler.NewProximityHandler(cfg.ProximityService, cfg.AuthService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/me/location", playerHandler.UpdateLocation).Methods(http.MethodPut)
	players.HandleFunc("/nearby", proximityHandler.NearbyPlayers).Methods(http.MethodGet)
	players.HandleFunc("/non-friends", proximityHandler.NonFriendPlayers).Methods(http.MethodGet)

	// Friend routes (all require auth)
	friends := api.PathPrefix("/friends").Subrouter()
	friends.Use(authMiddleware)
	friends.HandleFunc("", friendHandler.List).Methods(http.MethodGet)
	friends.HandleFunc("/requests", friendHandler.Requests).Methods(http.MethodGet)
	friends.HandleFunc("/requests", friendHandler.Send).Methods(http.MethodPost)
	friends.HandleFunc("/requests/respond", friendHandler.Respond).Methods(http.MethodPost)
	friends.HandleFunc("/{player_id}", friendHandler.Remove).Methods(http.MethodDelete)
	friends.HandleFunc("/{player_id}/experience", friendHandler.Experience).Methods(http.MethodGet)

	// Match routes (all require auth)
	// Fixed paths are registered before the {id} wildcards
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("", matchHandler.Host).Methods(http.MethodPost)
	matches.HandleFunc("", proximityHandler.AllMatches).Methods(http.MethodGet)
	matches.HandleFunc("/nearby", proximityHandler.NearbyMatches).Methods(http.MethodGet)
	matches.HandleFunc("/of-friends", proximityHandler.MatchesOfFriends).Methods(http.MethodGet)
	matches.HandleFunc("/by-host/{player_id}", matchHandler.GetByHost).Methods(http.MethodGet)
	matches.HandleFunc("/mine", matchHandler.GetMine).Methods(http.MethodGet)
	matches.HandleFunc("/mine/hiders", proximityHandler.VisibleHiders).Methods(http.MethodGet)
	matches.HandleFunc("/mine/hunters", proximityHandler.VisibleHunters).Methods(http.MethodGet)
	matches.HandleFunc("/mine/nearest-hider", proximityHandler.NearestHider).Methods(http.MethodGet)
	matches.HandleFunc("/leave", matchHandler.Leave).Methods(http.MethodPost)
	matches.HandleFunc("/end", matchHandler.End).Methods(http.MethodPost)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/join", matchHandler.Join).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/role", matchHandler.AssignRole).Methods(http.MethodPatch)
	matches.HandleFunc("/{id}/ready", matchHandler.SetReady).Methods(http.MethodPut)
	matches.HandleFunc("/{id}/loaded", matchHandler.SetLoaded).Methods(http.MethodPut)
	matches.HandleFunc("/{id}/invisible", matchHandler.SetInvisible).Methods(http.MethodPut)
	matches.HandleFunc("/{id}/catch", matchHandler.Catch).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/all-ready", matchHandler.AllReady).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/all-loaded", matchHandler.AllLoaded).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/start", matchHandler.Start).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/members", matchHandler.Members).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/average-experience", matchHandler.AverageExperience).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Server time (no auth); clients use it to drive phase countdowns
	api.HandleFunc("/time", serverTimeHandler(cfg.Clock)).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func serverTimeHandler(clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.ServerTime{Time: clk.Now()})
	}
}
