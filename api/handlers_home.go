package api

import "net/http"

type homeResponse struct {
	Name  string            `json:"name"`
	Links map[string]string `json:"links"`
}

// handleHome lists the entry points of the API
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, homeResponse{
		Name: "user-directory",
		Links: map[string]string{
			"users":   "/api/v1/users",
			"cache":   "/api/v1/cache",
			"health":  "/health",
			"metrics": "/metrics",
		},
	})
}
