package api

import (
	"net/http"
	"time"

	"innkeeper/internal/database"
	"innkeeper/internal/metrics"
	"innkeeper/internal/models"
)

// PackagePayload is the request body for creating or updating a travel
// package. Dates use YYYY-MM-DD.
type PackagePayload struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Destination   string  `json:"destination"`
	Category      string  `json:"category"`
	DurationDays  int     `json:"duration_days"`
	Price         float64 `json:"price"`
	Activities    string  `json:"activities"`
	AvailableFrom string  `json:"available_from"`
	AvailableTo   string  `json:"available_to"`
}

func (p *PackagePayload) validate() (from, to time.Time, msg string) {
	if p.Title == "" || p.Destination == "" {
		return from, to, "title and destination are required"
	}
	if !models.ValidCategory(p.Category) {
		return from, to, "invalid category"
	}
	if p.DurationDays <= 0 {
		return from, to, "duration_days must be positive"
	}
	if p.Price <= 0 {
		return from, to, "price must be positive"
	}

	var err error
	from, err = time.Parse("2006-01-02", p.AvailableFrom)
	if err != nil {
		return from, to, "Invalid date format. Use YYYY-MM-DD"
	}
	to, err = time.Parse("2006-01-02", p.AvailableTo)
	if err != nil {
		return from, to, "Invalid date format. Use YYYY-MM-DD"
	}
	if to.Before(from) {
		return from, to, "available_to must not be before available_from"
	}
	return from, to, ""
}

// handlePackages serves GET /api/packages?category=&search=&sort= and
// POST /api/packages.
func (s *HTTPServer) handlePackages(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("packages")

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		packages, err := s.db.ListPackages(r.Context(), database.PackageFilter{
			Category: query.Get("category"),
			Search:   query.Get("search"),
			Sort:     query.Get("sort"),
		})
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"packages": packages})

	case http.MethodPost:
		var payload PackagePayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		from, to, msg := payload.validate()
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		pkg := &models.TravelPackage{
			Title:         payload.Title,
			Description:   payload.Description,
			Destination:   payload.Destination,
			Category:      payload.Category,
			DurationDays:  payload.DurationDays,
			Price:         payload.Price,
			Activities:    payload.Activities,
			AvailableFrom: from,
			AvailableTo:   to,
		}
		if err := s.db.CreatePackage(r.Context(), pkg); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pkg)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handlePackageByID serves GET, PUT, and DELETE on /api/packages/{id}.
func (s *HTTPServer) handlePackageByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("package")

	id, subpath, err := pathID(r.URL.Path, "/api/packages/")
	if err != nil || subpath != "" {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		pkg, err := s.db.GetPackage(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pkg)

	case http.MethodPut:
		var payload PackagePayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		from, to, msg := payload.validate()
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		pkg, err := s.db.GetPackage(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		pkg.Title = payload.Title
		pkg.Description = payload.Description
		pkg.Destination = payload.Destination
		pkg.Category = payload.Category
		pkg.DurationDays = payload.DurationDays
		pkg.Price = payload.Price
		pkg.Activities = payload.Activities
		pkg.AvailableFrom = from
		pkg.AvailableTo = to

		if err := s.db.UpdatePackage(r.Context(), pkg); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pkg)

	case http.MethodDelete:
		if err := s.db.DeletePackage(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Travel package deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
