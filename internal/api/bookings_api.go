package api

import (
	"net/http"
	"strconv"
	"time"

	"innkeeper/internal/database"
	"innkeeper/internal/metrics"
	"innkeeper/internal/models"
	"innkeeper/internal/service"
)

// BookingPayload is the request body for creating or updating a booking.
// TotalPrice omitted keeps/derives the price; an explicit 0 clears it so it
// is recomputed from the room's nightly rate.
type BookingPayload struct {
	UserID       int64    `json:"user_id"`
	RoomID       int64    `json:"room_id"`
	CheckInDate  string   `json:"check_in_date"`
	CheckOutDate string   `json:"check_out_date"`
	Status       string   `json:"status,omitempty"`
	TotalPrice   *float64 `json:"total_price,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// CancelPayload is the request body for POST /api/bookings/{id}/cancel.
type CancelPayload struct {
	Confirm bool `json:"confirm"`
}

// UpgradePayload is the request body for POST /api/bookings/{id}/upgrade-room.
type UpgradePayload struct {
	NewRoomID int64 `json:"new_room_id"`
}

func (p *BookingPayload) toRequest() (service.BookingRequest, error) {
	req := service.BookingRequest{
		UserID:     p.UserID,
		RoomID:     p.RoomID,
		Status:     models.BookingStatus(p.Status),
		TotalPrice: p.TotalPrice,
		Notes:      p.Notes,
	}

	if p.CheckInDate != "" {
		checkIn, err := time.Parse("2006-01-02", p.CheckInDate)
		if err != nil {
			return req, err
		}
		req.CheckInDate = checkIn
	}
	if p.CheckOutDate != "" {
		checkOut, err := time.Parse("2006-01-02", p.CheckOutDate)
		if err != nil {
			return req, err
		}
		req.CheckOutDate = checkOut
	}
	return req, nil
}

// handleBookings serves GET /api/bookings?user_id=&room_id=&status=&sort=
// and POST /api/bookings.
func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings")

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		filter := database.BookingFilter{
			Status: models.BookingStatus(query.Get("status")),
			Sort:   query.Get("sort"),
		}
		if raw := query.Get("user_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid user_id")
				return
			}
			filter.UserID = id
		}
		if raw := query.Get("room_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid room_id")
				return
			}
			filter.RoomID = id
		}

		bookings, err := s.db.ListBookings(r.Context(), filter)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		responses, err := s.bookingResponses(r.Context(), bookings)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": responses})

	case http.MethodPost:
		var payload BookingPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.CheckInDate == "" || payload.CheckOutDate == "" {
			writeError(w, http.StatusBadRequest, "check_in_date and check_out_date are required")
			return
		}

		req, err := payload.toRequest()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}

		booking, err := s.bookings.Create(r.Context(), req)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		resp, err := s.bookingResponse(r.Context(), booking)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleBookingSubpath dispatches /api/bookings/{id} and its actions:
// POST /api/bookings/{id}/cancel and POST /api/bookings/{id}/upgrade-room.
func (s *HTTPServer) handleBookingSubpath(w http.ResponseWriter, r *http.Request) {
	id, subpath, err := pathID(r.URL.Path, "/api/bookings/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	switch subpath {
	case "":
		s.handleBookingByID(w, r, id)
	case "cancel":
		s.handleCancelBooking(w, r, id)
	case "upgrade-room":
		s.handleUpgradeBookingRoom(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request, id int64) {
	metrics.IncHTTP("booking")

	switch r.Method {
	case http.MethodGet:
		booking, err := s.db.GetBooking(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		resp, err := s.bookingResponse(r.Context(), booking)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodPut:
		var payload BookingPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req, err := payload.toRequest()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}

		booking, err := s.bookings.Update(r.Context(), id, req)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		resp, err := s.bookingResponse(r.Context(), booking)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodDelete:
		if err := s.db.DeleteBooking(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleCancelBooking(w http.ResponseWriter, r *http.Request, id int64) {
	metrics.IncHTTP("booking_cancel")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var payload CancelPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := s.bookings.Cancel(r.Context(), id, payload.Confirm); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
}

func (s *HTTPServer) handleUpgradeBookingRoom(w http.ResponseWriter, r *http.Request, id int64) {
	metrics.IncHTTP("booking_upgrade")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var payload UpgradePayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.NewRoomID <= 0 {
		writeError(w, http.StatusBadRequest, "new_room_id is required")
		return
	}

	if _, err := s.bookings.UpgradeRoom(r.Context(), id, payload.NewRoomID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room upgraded successfully"})
}
