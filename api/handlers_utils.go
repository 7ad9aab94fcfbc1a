package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/status-im/user-directory/interfaces"
	"github.com/status-im/user-directory/users"
)

const defaultShutdownTimeout = 5 * time.Second

// statusClientClosedRequest is reported when the client went away before
// the response was ready
const statusClientClosedRequest = 499

// errorResponse is the body of every failed request
type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// setCacheStatusHeader sets the Cache-Status header based on cache status
func (s *Server) setCacheStatusHeader(w http.ResponseWriter, cacheStatus interfaces.CacheStatus) {
	if cacheStatus != "" {
		w.Header().Set("Cache-Status", cacheStatus.String())
	}
}

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	s.sendJSONResponseWithStatus(w, http.StatusOK, data)
}

func (s *Server) sendJSONResponseWithStatus(w http.ResponseWriter, statusCode int, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// ETag is the MD5 hash of the body
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")
	w.WriteHeader(statusCode)

	if _, err := w.Write(responseBytes); err != nil {
		logrus.WithError(err).Warn("Error writing response")
	}
}

func (s *Server) sendError(w http.ResponseWriter, statusCode int, message string) {
	s.sendJSONResponseWithStatus(w, statusCode, errorResponse{
		Status: "error",
		Error:  message,
	})
}

// sendServiceError maps service errors to HTTP status codes
func (s *Server) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := statusCodeForError(err)
	if statusCode >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": requestIDFromContext(r.Context()),
			"path":       r.URL.Path,
		}).Warn("Request failed")
	}
	s.sendError(w, statusCode, err.Error())
}

func statusCodeForError(err error) int {
	switch {
	case errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, users.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
