package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/dataset"
)

// CSVSource loads the raw table from a CSV file. When the file is missing
// and a remote URL is configured, the file is fetched once and cached on
// disk for subsequent loads.
type CSVSource struct {
	path      string
	remoteURL string
	client    *http.Client
	logger    *zap.Logger
}

// NewCSVSource constructs a CSV-backed source.
func NewCSVSource(path, remoteURL string, logger *zap.Logger) *CSVSource {
	return &CSVSource{
		path:      path,
		remoteURL: remoteURL,
		client:    &http.Client{Timeout: 2 * time.Minute},
		logger:    logger,
	}
}

// Load reads the CSV and returns the untyped table.
func (s *CSVSource) Load(ctx context.Context) (dataset.RawTable, error) {
	if err := s.ensureLocal(ctx); err != nil {
		return dataset.RawTable{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("open csv %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return dataset.RawTable{}, fmt.Errorf("csv %s is empty", s.path)
	}
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("read csv header %s: %w", s.path, err)
	}

	table := dataset.RawTable{Columns: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataset.RawTable{}, fmt.Errorf("read csv row %s: %w", s.path, err)
		}
		table.Rows = append(table.Rows, row)
	}

	s.logger.Debug("csv source loaded",
		zap.String("path", s.path),
		zap.Int("rows", len(table.Rows)),
	)
	return table, nil
}

func (s *CSVSource) ensureLocal(ctx context.Context) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	if s.remoteURL == "" {
		return fmt.Errorf("data file not found at %s and no remote url configured", s.path)
	}

	s.logger.Info("fetching data file", zap.String("url", s.remoteURL), zap.String("dest", s.path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.remoteURL, nil)
	if err != nil {
		return fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.remoteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", s.remoteURL, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := s.path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	return os.Rename(tmp, s.path)
}
