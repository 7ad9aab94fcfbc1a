package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"users": "unknown",
		"cache": "unknown",
	}

	if s.usersService.Healthy() {
		services["users"] = "up"
	}

	if s.cacheService != nil {
		services["cache"] = "up"
	}

	s.sendJSONResponse(w, map[string]interface{}{
		"status":   "ok",
		"services": services,
	})
}
