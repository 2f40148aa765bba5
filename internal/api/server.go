// Package api exposes the booking backend as a REST-style HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"innkeeper/internal/cache"
	"innkeeper/internal/database"
	"innkeeper/internal/report"
	"innkeeper/internal/service"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// HTTPServer serves the REST API.
type HTTPServer struct {
	db       *database.DB
	bookings *service.BookingService
	reports  *report.Service
	cache    *cache.ListingCache
	log      zerolog.Logger
	limiter  *rate.Limiter
}

// Options tunes the server's middleware.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewHTTPServer wires the API over the given store and services. cache may
// be nil to disable listing caching.
func NewHTTPServer(db *database.DB, bookings *service.BookingService, reports *report.Service, listingCache *cache.ListingCache, logger zerolog.Logger, opts Options) *HTTPServer {
	s := &HTTPServer{
		db:       db,
		bookings: bookings,
		reports:  reports,
		cache:    listingCache,
		log:      logger.With().Str("component", "api").Logger(),
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = int(opts.RateLimitRPS)
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}
	return s
}

// Handler returns the routed HTTP handler with middleware applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/users", s.handleUsers)
	mux.HandleFunc("/api/users/", s.handleUserByID)
	mux.HandleFunc("/api/hotels", s.handleHotels)
	mux.HandleFunc("/api/hotels/", s.handleHotelByID)
	mux.HandleFunc("/api/rooms", s.handleRooms)
	mux.HandleFunc("/api/rooms/available", s.handleAvailableRooms)
	mux.HandleFunc("/api/rooms/", s.handleRoomByID)
	mux.HandleFunc("/api/bookings", s.handleBookings)
	mux.HandleFunc("/api/bookings/", s.handleBookingSubpath)
	mux.HandleFunc("/api/packages", s.handlePackages)
	mux.HandleFunc("/api/packages/", s.handlePackageByID)
	mux.HandleFunc("/api/reports/export.xlsx", s.handleExport)

	return s.withLogging(s.withRateLimit(mux))
}

// Start runs the server until ctx is cancelled.
func (s *HTTPServer) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()

	s.log.Info().Int("port", port).Msg("API server started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) withRateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *HTTPServer) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses:
// ValidationError 400, NotFoundError 404, everything else 500.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case service.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "A user with this email already exists")
	default:
		s.log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID extracts the numeric ID segment following prefix, along with any
// remaining subpath ("cancel", "upgrade-room").
func pathID(path, prefix string) (int64, string, error) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return 0, "", fmt.Errorf("missing id")
	}

	idPart := rest
	subpath := ""
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		idPart = rest[:idx]
		subpath = rest[idx+1:]
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid id %q", idPart)
	}
	return id, subpath, nil
}

func decodeBody(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}
