package api

import (
	"fmt"
	"net/http"
	"time"

	"innkeeper/internal/metrics"
	"innkeeper/internal/report"
)

// handleExport serves GET /api/reports/export.xlsx with a workbook
// containing one sheet per table.
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	filename := report.Filename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.reports.Export(r.Context(), w); err != nil {
		s.log.Error().Err(err).Msg("Export failed")
	}
}
