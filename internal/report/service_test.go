package report

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeExporter struct {
	tables map[string][]map[string]interface{}
	order  []string
}

func (f *fakeExporter) GetTableNames(_ context.Context) ([]string, error) {
	return f.order, nil
}

func (f *fakeExporter) GetTableData(_ context.Context, tableName string) ([]map[string]interface{}, []string, error) {
	rows := f.tables[tableName]
	return rows, []string{"id", "name"}, nil
}

func TestExportRoundTrip(t *testing.T) {
	exporter := &fakeExporter{
		order: []string{"hotels", "rooms"},
		tables: map[string][]map[string]interface{}{
			"hotels": {
				{"id": int64(1), "name": "Harbor View"},
				{"id": int64(2), "name": "Seaside"},
			},
			"rooms": {
				{"id": int64(10), "name": "101"},
			},
		},
	}

	svc := NewService(exporter, nil, zerolog.New(io.Discard))

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer file.Close()

	assert.ElementsMatch(t, []string{"hotels", "rooms"}, file.GetSheetList())

	rows, err := file.GetRows("hotels")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name"}, rows[0])
	assert.Equal(t, "Harbor View", rows[1][1])

	rows, err = file.GetRows("rooms")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "innkeeper_export_2026-08.xlsx", Filename(ts))
}

func TestSheetNameTruncation(t *testing.T) {
	w := NewExcelizeWriter()
	long := "a_very_long_table_name_well_past_the_excel_limit"
	require.NoError(t, w.AddSheet(long))
	require.NoError(t, w.WriteHeader([]string{"id"}))

	var buf bytes.Buffer
	require.NoError(t, w.Save(&buf))

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Len(t, sheets[0], 31)
}
