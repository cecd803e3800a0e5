package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCSVSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "student_id,subject,department,exam_year,pass_fail\n" +
		"S1,Math,SCIENCE,2023,Pass\n" +
		"S2,Physics,SCIENCE,2022,Fail\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src := NewCSVSource(path, "", zap.NewNop())
	table, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"student_id", "subject", "department", "exam_year", "pass_fail"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "S1", table.Rows[0][0])
	assert.Equal(t, "Fail", table.Rows[1][4])
}

func TestCSVSourceMissingFileNoRemote(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), "", zap.NewNop())
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCSVSourceRemoteFetchOnce(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("student_id,subject,department\nS1,Math,SCIENCE\n"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "data.csv")
	src := NewCSVSource(path, server.URL, zap.NewNop())

	table, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	// Second load uses the cached file.
	_, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestCSVSourceRemoteFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := NewCSVSource(filepath.Join(t.TempDir(), "data.csv"), server.URL, zap.NewNop())
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestCSVSourceEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	src := NewCSVSource(path, "", zap.NewNop())
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
