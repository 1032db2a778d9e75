package handler

import (
	"net/http"
	"strconv"

	"github.com/manhunt-game/manhunt-go/internal/api/middleware"
	"github.com/manhunt-game/manhunt-go/internal/api/response"
	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/services/auth"
	"github.com/manhunt-game/manhunt-go/internal/services/proximity"
)

const (
	defaultNearbyRadiusKm   = 5.0
	defaultHiderProbeMeters = 100.0
)

// ProximityHandler handles location query endpoints
type ProximityHandler struct {
	proximityService proximity.ServiceInterface
	authService      *auth.Service
}

// NewProximityHandler creates a new proximity handler
func NewProximityHandler(proximityService proximity.ServiceInterface, authService *auth.Service) *ProximityHandler {
	return &ProximityHandler{
		proximityService: proximityService,
		authService:      authService,
	}
}

// livePlayer fetches the current player record rather than the login-time snapshot
func (h *ProximityHandler) livePlayer(r *http.Request) (*model.Player, error) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		return nil, NewUnauthorizedError()
	}
	return h.authService.GetPlayer(r.Context(), session.Token)
}

// floatQuery reads a float query parameter, falling back when absent
func floatQuery(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return 0, NewInvalidRequestError(name + " must be a positive number")
	}
	return value, nil
}

// NearbyPlayers handles GET /api/v1/players/nearby
func (h *ProximityHandler) NearbyPlayers(w http.ResponseWriter, r *http.Request) {
	player, err := h.livePlayer(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	radiusKm, err := floatQuery(r, "radius_km", defaultNearbyRadiusKm)
	if err != nil {
		WriteError(w, err)
		return
	}

	nearby, err := h.proximityService.NearbyPlayers(r.Context(), player.Location, radiusKm, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NearbyPlayersFromService(nearby))
}

// NonFriendPlayers handles GET /api/v1/players/non-friends
func (h *ProximityHandler) NonFriendPlayers(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	players, err := h.proximityService.NonFriendPlayers(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NearbyPlayersFromService(players))
}

// NearbyMatches handles GET /api/v1/matches/nearby
func (h *ProximityHandler) NearbyMatches(w http.ResponseWriter, r *http.Request) {
	player, err := h.livePlayer(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	radiusKm, err := floatQuery(r, "radius_km", defaultNearbyRadiusKm)
	if err != nil {
		WriteError(w, err)
		return
	}

	nearby, err := h.proximityService.NearbyMatches(r.Context(), player.Location, radiusKm)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NearbyMatchesFromService(nearby))
}

// AllMatches handles GET /api/v1/matches
func (h *ProximityHandler) AllMatches(w http.ResponseWriter, r *http.Request) {
	player, err := h.livePlayer(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	matches, err := h.proximityService.AllMatches(r.Context(), player.Location)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NearbyMatchesFromService(matches))
}

// MatchesOfFriends handles GET /api/v1/matches/of-friends
func (h *ProximityHandler) MatchesOfFriends(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	matches, err := h.proximityService.MatchesOfFriends(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchesFromModel(matches))
}

// VisibleHiders handles GET /api/v1/matches/mine/hiders
func (h *ProximityHandler) VisibleHiders(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	hiders, err := h.proximityService.VisibleHiders(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NearbyPlayersFromService(hiders))
}

// VisibleHunters handles GET /api/v1/matches/mine/hunters
func (h *ProximityHandler) VisibleHunters(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	hunters, err := h.proximityService.VisibleHunters(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NearbyPlayersFromService(hunters))
}

// NearestHider handles GET /api/v1/matches/mine/nearest-hider
func (h *ProximityHandler) NearestHider(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	radiusMeters, err := floatQuery(r, "radius_m", defaultHiderProbeMeters)
	if err != nil {
		WriteError(w, err)
		return
	}

	hider, meters, err := h.proximityService.NearestHider(r.Context(), player.ID, radiusMeters)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NearestHider{
		Player:         response.PlayerFromModel(hider),
		DistanceMeters: meters,
	})
}
