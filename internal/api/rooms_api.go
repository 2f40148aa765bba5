package api

import (
	"net/http"
	"strconv"

	"innkeeper/internal/cache"
	"innkeeper/internal/database"
	"innkeeper/internal/metrics"
	"innkeeper/internal/models"
)

// Rooms are read-only through the API.

// handleRooms serves GET /api/rooms?hotel_id=&room_type=&capacity=&search=&sort=.
func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	filter := database.RoomFilter{
		RoomType: models.RoomType(query.Get("room_type")),
		Search:   query.Get("search"),
		Sort:     query.Get("sort"),
	}
	if raw := query.Get("hotel_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid hotel_id")
			return
		}
		filter.HotelID = id
	}
	if raw := query.Get("capacity"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid capacity")
			return
		}
		filter.Capacity = capacity
	}

	rooms, err := s.db.ListRooms(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	responses, err := s.roomResponses(r.Context(), rooms)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": responses})
}

// handleAvailableRooms serves
// GET /api/rooms/available?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD&room_type=TYPE.
func (s *HTTPServer) handleAvailableRooms(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms_available")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	checkIn := query.Get("check_in")
	checkOut := query.Get("check_out")
	roomType := query.Get("room_type")

	cacheKey := cache.AvailabilityKey(checkIn, checkOut, roomType)
	var cached []RoomResponse
	if s.cache.Enabled() && s.cache.Get(r.Context(), cacheKey, &cached) {
		writeJSON(w, http.StatusOK, map[string]any{"rooms": cached})
		return
	}

	rooms, err := s.bookings.AvailableRooms(r.Context(), checkIn, checkOut, roomType)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	responses, err := s.roomResponses(r.Context(), rooms)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.cache.Set(r.Context(), cacheKey, responses)
	writeJSON(w, http.StatusOK, map[string]any{"rooms": responses})
}

// handleRoomByID serves GET /api/rooms/{id}.
func (s *HTTPServer) handleRoomByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("room")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, subpath, err := pathID(r.URL.Path, "/api/rooms/")
	if err != nil || subpath != "" {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	room, err := s.db.GetRoom(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	responses, err := s.roomResponses(r.Context(), []models.Room{*room})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, responses[0])
}
