package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manhunt-game/manhunt-go/internal/api/middleware"
	"github.com/manhunt-game/manhunt-go/internal/api/request"
	"github.com/manhunt-game/manhunt-go/internal/api/response"
	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/services/social"
)

// FriendHandler handles friendship-related endpoints
type FriendHandler struct {
	socialService social.ServiceInterface
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(socialService social.ServiceInterface) *FriendHandler {
	return &FriendHandler{
		socialService: socialService,
	}
}

// List handles GET /api/v1/friends
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	friends, err := h.socialService.FriendsOf(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(friends))
}

// Requests handles GET /api/v1/friends/requests
func (h *FriendHandler) Requests(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	requests, err := h.socialService.PendingRequestsFor(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FriendRequestsFromModel(requests))
}

// Send handles POST /api/v1/friends/requests
func (h *FriendHandler) Send(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.SendFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.RecipientID == "" {
		WriteError(w, NewInvalidRequestError("recipient_id is required"))
		return
	}

	if err := h.socialService.SendRequest(r.Context(), player.ID, model.PlayerID(req.RecipientID)); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, nil)
}

// Respond handles POST /api/v1/friends/requests/respond
func (h *FriendHandler) Respond(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.RespondFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.RequesterID == "" {
		WriteError(w, NewInvalidRequestError("requester_id is required"))
		return
	}

	if err := h.socialService.RespondToRequest(r.Context(), model.PlayerID(req.RequesterID), player.ID, req.Accept); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Remove handles DELETE /api/v1/friends/{player_id}
func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	otherID := model.PlayerID(mux.Vars(r)["player_id"])

	if err := h.socialService.RemoveFriendship(r.Context(), player.ID, otherID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Experience handles GET /api/v1/friends/{player_id}/experience
func (h *FriendHandler) Experience(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	otherID := model.PlayerID(mux.Vars(r)["player_id"])

	experience, err := h.socialService.ExperienceBetween(r.Context(), player.ID, otherID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Experience{Experience: experience})
}
