package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/status-im/user-directory/interfaces"
)

type usersResponse struct {
	Users []interfaces.User `json:"users"`
}

type invalidateResponse struct {
	Invalidated int `json:"invalidated"`
}

// handleListUsers returns the whole directory
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	items, cacheStatus, err := s.usersService.ListUsers(r.Context())
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}

	s.setCacheStatusHeader(w, cacheStatus)
	s.sendJSONResponse(w, usersResponse{Users: items})
}

// handleGetUser returns a single user by id
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 0 {
		s.sendError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, cacheStatus, err := s.usersService.GetUser(r.Context(), id)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}

	s.setCacheStatusHeader(w, cacheStatus)
	s.sendJSONResponse(w, user)
}

// handleInvalidateUsers marks all cached user data invalidated
func (s *Server) handleInvalidateUsers(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, invalidateResponse{Invalidated: s.usersService.InvalidateUsers()})
}
