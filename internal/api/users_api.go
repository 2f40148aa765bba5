package api

import (
	"net/http"

	"innkeeper/internal/database"
	"innkeeper/internal/metrics"
	"innkeeper/internal/models"
)

// UserPayload is the request body for creating or updating a user.
type UserPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// handleUsers serves GET /api/users?search=&sort= and POST /api/users.
func (s *HTTPServer) handleUsers(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("users")

	switch r.Method {
	case http.MethodGet:
		users, err := s.db.ListUsers(r.Context(), database.UserFilter{
			Search: r.URL.Query().Get("search"),
			Sort:   r.URL.Query().Get("sort"),
		})
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": users})

	case http.MethodPost:
		var payload UserPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.Name == "" || payload.Email == "" {
			writeError(w, http.StatusBadRequest, "name and email are required")
			return
		}

		user := &models.User{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Address: payload.Address,
		}
		if err := s.db.CreateUser(r.Context(), user); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleUserByID serves GET, PUT, and DELETE on /api/users/{id}.
func (s *HTTPServer) handleUserByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("user")

	id, subpath, err := pathID(r.URL.Path, "/api/users/")
	if err != nil || subpath != "" {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := s.db.GetUser(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodPut:
		var payload UserPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		user, err := s.db.GetUser(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		if payload.Name != "" {
			user.Name = payload.Name
		}
		if payload.Email != "" {
			user.Email = payload.Email
		}
		if payload.Phone != "" {
			user.Phone = payload.Phone
		}
		if payload.Address != "" {
			user.Address = payload.Address
		}

		if err := s.db.UpdateUser(r.Context(), user); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodDelete:
		// Deleting a user cascades to their bookings.
		if err := s.db.DeleteUser(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
