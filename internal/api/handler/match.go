package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/manhunt-game/manhunt-go/internal/api/middleware"
	"github.com/manhunt-game/manhunt-go/internal/api/request"
	"github.com/manhunt-game/manhunt-go/internal/api/response"
	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/services/auth"
	"github.com/manhunt-game/manhunt-go/internal/services/experience"
	"github.com/manhunt-game/manhunt-go/internal/services/match"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	matchController   match.ControllerInterface
	experienceService experience.ServiceInterface
	authService       *auth.Service
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchController match.ControllerInterface, experienceService experience.ServiceInterface, authService *auth.Service) *MatchHandler {
	return &MatchHandler{
		matchController:   matchController,
		experienceService: experienceService,
		authService:       authService,
	}
}

// livePlayer fetches the current player record rather than the login-time snapshot
func (h *MatchHandler) livePlayer(r *http.Request) (*model.Player, error) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		return nil, NewUnauthorizedError()
	}
	return h.authService.GetPlayer(r.Context(), session.Token)
}

// Host handles POST /api/v1/matches
func (h *MatchHandler) Host(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.HostMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	config := model.DefaultMatchConfig()
	if req.MaxHunters > 0 {
		config.MaxHunters = req.MaxHunters
	}
	if req.MaxHiders > 0 {
		config.MaxHiders = req.MaxHiders
	}
	if req.DurationSec > 0 {
		config.Duration = time.Duration(req.DurationSec) * time.Second
	}
	if req.HidingSec > 0 {
		config.HidingDuration = time.Duration(req.HidingSec) * time.Second
	}
	if req.HintIntervalSec > 0 {
		config.HintInterval = time.Duration(req.HintIntervalSec) * time.Second
	}

	location := model.Coordinate{Latitude: req.Location.Latitude, Longitude: req.Location.Longitude}
	m, err := h.matchController.HostMatch(r.Context(), player.ID, req.Name, location, config)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.GetMatch(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// GetMine handles GET /api/v1/matches/mine
func (h *MatchHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	player, err := h.livePlayer(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if player.CurrentMatch == nil {
		WriteError(w, model.ErrNotInMatch)
		return
	}

	m, err := h.matchController.GetMatch(r.Context(), *player.CurrentMatch)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// GetByHost handles GET /api/v1/matches/by-host/{player_id}
func (h *MatchHandler) GetByHost(w http.ResponseWriter, r *http.Request) {
	hostID := model.PlayerID(mux.Vars(r)["player_id"])

	m, err := h.matchController.GetMatchByHost(r.Context(), hostID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Join handles POST /api/v1/matches/{id}/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	matchID := model.MatchID(mux.Vars(r)["id"])

	if err := h.matchController.JoinMatch(r.Context(), player.ID, matchID); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.GetMatch(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Leave handles POST /api/v1/matches/leave
func (h *MatchHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.matchController.LeaveMatch(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AssignRole handles PATCH /api/v1/matches/{id}/role
func (h *MatchHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	matchID := model.MatchID(mux.Vars(r)["id"])

	var req request.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.matchController.AssignRole(r.Context(), player.ID, matchID, model.Role(req.Role)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SetReady handles PUT /api/v1/matches/{id}/ready
func (h *MatchHandler) SetReady(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.matchController.SetReady)
}

// SetLoaded handles PUT /api/v1/matches/{id}/loaded
func (h *MatchHandler) SetLoaded(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.matchController.SetLoaded)
}

// SetInvisible handles PUT /api/v1/matches/{id}/invisible
func (h *MatchHandler) SetInvisible(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.matchController.SetInvisible)
}

func (h *MatchHandler) setFlag(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, value bool) error) {
	player := middleware.MustGetPlayer(r.Context())
	matchID := model.MatchID(mux.Vars(r)["id"])

	var req request.SetFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := set(r.Context(), player.ID, matchID, req.Value); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Catch handles POST /api/v1/matches/{id}/catch
func (h *MatchHandler) Catch(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	matchID := model.MatchID(mux.Vars(r)["id"])

	var req request.CatchHiderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.TargetID == "" {
		WriteError(w, NewInvalidRequestError("target_id is required"))
		return
	}

	if err := h.matchController.CatchHider(r.Context(), player.ID, matchID, model.PlayerID(req.TargetID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AllReady handles GET /api/v1/matches/{id}/all-ready
func (h *MatchHandler) AllReady(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["id"])

	all, err := h.matchController.AllReady(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Readiness{All: all})
}

// AllLoaded handles GET /api/v1/matches/{id}/all-loaded
func (h *MatchHandler) AllLoaded(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["id"])

	all, err := h.matchController.AllLoaded(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Readiness{All: all})
}

// Start handles POST /api/v1/matches/{id}/start
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["id"])

	if err := h.matchController.StartMatch(r.Context(), matchID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// End handles POST /api/v1/matches/end
func (h *MatchHandler) End(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.matchController.EndMatch(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Members handles GET /api/v1/matches/{id}/members
func (h *MatchHandler) Members(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["id"])

	members, err := h.matchController.MembersOf(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(members))
}

// AverageExperience handles GET /api/v1/matches/{id}/average-experience
func (h *MatchHandler) AverageExperience(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["id"])

	average, err := h.experienceService.AverageForMatch(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AverageExperience{Average: average})
}
