package api

import (
	"net/http"

	"innkeeper/internal/database"
	"innkeeper/internal/metrics"
)

// Hotels are read-only through the API; the catalog is managed by seeds
// and operations tooling.

// handleHotels serves GET /api/hotels?search=&sort=.
func (s *HTTPServer) handleHotels(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("hotels")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	hotels, err := s.db.ListHotels(r.Context(), database.HotelFilter{
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	items := make([]HotelListItem, 0, len(hotels))
	for _, hotel := range hotels {
		count, err := s.db.CountHotelRooms(r.Context(), hotel.ID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		items = append(items, HotelListItem{
			ID:        hotel.ID,
			Name:      hotel.Name,
			Address:   hotel.Address,
			Rating:    hotel.Rating,
			Image:     hotel.Image,
			RoomCount: count,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": items})
}

// handleHotelByID serves GET /api/hotels/{id} with the hotel's rooms.
func (s *HTTPServer) handleHotelByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("hotel")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, subpath, err := pathID(r.URL.Path, "/api/hotels/")
	if err != nil || subpath != "" {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	hotel, err := s.db.GetHotel(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	rooms, err := s.db.ListHotelRooms(r.Context(), hotel.ID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	roomResponses, err := s.roomResponses(r.Context(), rooms)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HotelDetail{Hotel: *hotel, Rooms: roomResponses})
}
