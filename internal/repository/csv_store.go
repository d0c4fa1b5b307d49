package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	"github.com/vladimiradmaev/sugar-guidance/internal/utils"
)

// CSVStore keeps the history as a single CSV file with columns
// datetime, reading_type, sugar. Every append rewrites the whole file.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store backed by the file at path. The file is created on first append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// csvTable is the file contents with the header kept so unknown columns survive a rewrite
type csvTable struct {
	header []string
	rows   [][]string
}

func (t *csvTable) column(name string) int {
	for i, h := range t.header {
		if h == name {
			return i
		}
	}
	return -1
}

// migrate adds the reading_type column to legacy logs and pads short rows
func (t *csvTable) migrate() {
	legacy := t.column(ColumnReadingType) < 0
	for i, row := range t.rows {
		for len(row) < len(t.header) {
			row = append(row, "")
		}
		if legacy {
			row = append(row, string(domain.ContextRandom))
		}
		t.rows[i] = row
	}
	if legacy {
		t.header = append(t.header, ColumnReadingType)
	}
}

func (t *csvTable) cell(row []string, column string) string {
	i := t.column(column)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func (s *CSVStore) readTable() (*csvTable, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history header: %w", err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history rows: %w", err)
	}

	table := &csvTable{header: header, rows: rows}
	if table.column(ColumnDatetime) < 0 || table.column(ColumnSugar) < 0 {
		return nil, fmt.Errorf("history file %s is missing the %s or %s column", s.path, ColumnDatetime, ColumnSugar)
	}
	table.migrate()
	return table, nil
}

func (s *CSVStore) writeTable(table *csvTable) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("set history file mode: %w", err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(table.header); err != nil {
		tmp.Close()
		return fmt.Errorf("write history header: %w", err)
	}
	if err := w.WriteAll(table.rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write history rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

// Append reads the whole log, adds the reading and writes the log back
func (s *CSVStore) Append(ctx context.Context, reading domain.Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.readTable()
	if err != nil {
		return err
	}
	if table == nil {
		table = &csvTable{header: []string{ColumnDatetime, ColumnReadingType, ColumnSugar}}
	}

	row := make([]string, len(table.header))
	row[table.column(ColumnDatetime)] = utils.FormatTimestamp(reading.Timestamp)
	row[table.column(ColumnReadingType)] = string(reading.Context)
	row[table.column(ColumnSugar)] = strconv.Itoa(reading.Value)
	table.rows = append(table.rows, row)

	return s.writeTable(table)
}

// All loads the full log. A missing file is an empty history.
func (s *CSVStore) All(ctx context.Context) ([]domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	table, err := s.readTable()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if table == nil {
		return []domain.Reading{}, nil
	}

	readings := make([]domain.Reading, 0, len(table.rows))
	for i, row := range table.rows {
		reading, err := Normalize(RawRecord{
			Datetime:    table.cell(row, ColumnDatetime),
			ReadingType: table.cell(row, ColumnReadingType),
			Sugar:       table.cell(row, ColumnSugar),
		})
		if err != nil {
			return nil, fmt.Errorf("history row %d: %w", i+2, err)
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

func (s *CSVStore) Tail(ctx context.Context, n int) ([]domain.Reading, error) {
	readings, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return tailOf(readings, n), nil
}

func (s *CSVStore) FilterByContext(ctx context.Context, readingCtx domain.ReadingContext) ([]domain.Reading, error) {
	readings, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return filterByContext(readings, readingCtx), nil
}

func (s *CSVStore) Close() error {
	return nil
}

var _ domain.HistoryStore = (*CSVStore)(nil)
