package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// TableExporter provides access to database tables for export.
// *database.DB implements it.
type TableExporter interface {
	GetTableNames(ctx context.Context) ([]string, error)
	GetTableData(ctx context.Context, tableName string) ([]map[string]interface{}, []string, error)
}

// Service writes full-database Excel exports.
type Service struct {
	exporter TableExporter
	writer   func() ExcelWriter // factory for creating new Excel writers
	logger   zerolog.Logger
}

func NewService(exporter TableExporter, writerFactory func() ExcelWriter, logger zerolog.Logger) *Service {
	if writerFactory == nil {
		writerFactory = NewExcelizeWriter
	}
	return &Service{
		exporter: exporter,
		writer:   writerFactory,
		logger:   logger.With().Str("component", "report").Logger(),
	}
}

// Filename returns the export filename for the given time, e.g.
// "innkeeper_export_2026-08.xlsx".
func Filename(t time.Time) string {
	return fmt.Sprintf("innkeeper_export_%s.xlsx", t.Format("2006-01"))
}

// Export writes an Excel workbook with one sheet per exported table.
func (s *Service) Export(ctx context.Context, out io.Writer) error {
	tables, err := s.exporter.GetTableNames(ctx)
	if err != nil {
		return fmt.Errorf("get table names: %w", err)
	}

	writer := s.writer()
	for _, table := range tables {
		rowMaps, columns, err := s.exporter.GetTableData(ctx, table)
		if err != nil {
			return fmt.Errorf("export table %s: %w", table, err)
		}

		if err := writer.AddSheet(table); err != nil {
			return err
		}
		if err := writer.WriteHeader(columns); err != nil {
			return err
		}

		for _, rowMap := range rowMaps {
			row := make([]interface{}, len(columns))
			for i, col := range columns {
				row[i] = rowMap[col]
			}
			if err := writer.WriteRow(row); err != nil {
				return err
			}
		}

		s.logger.Debug().Str("table", table).Int("rows", len(rowMaps)).Msg("table exported")
	}

	if err := writer.Save(out); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	s.logger.Info().Int("tables", len(tables)).Msg("export completed")
	return nil
}
