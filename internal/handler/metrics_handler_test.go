package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/exam-analytics-api/internal/dataset"
	"github.com/noah-isme/exam-analytics-api/internal/models"
	"github.com/noah-isme/exam-analytics-api/internal/service"
)

type fakeTableProvider struct {
	table *dataset.Table
	err   error
}

func (f *fakeTableProvider) Table(context.Context) (*dataset.Table, error) {
	return f.table, f.err
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func TestReadyWhenDatasetLoads(t *testing.T) {
	provider := &fakeTableProvider{table: &dataset.Table{Records: make([]models.ExamRecord, 3)}}
	h := NewMetricsHandler(service.NewMetricsService(), provider, &fakePinger{})

	rec, _ := perform(t, h.Ready, http.MethodGet, "/ready", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
	assert.Contains(t, rec.Body.String(), `"cache":"ok"`)
}

func TestReadyFailsWhenSourceBroken(t *testing.T) {
	provider := &fakeTableProvider{err: errors.New("file missing")}
	h := NewMetricsHandler(service.NewMetricsService(), provider, nil)

	rec, _ := perform(t, h.Ready, http.MethodGet, "/ready", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"not ready"`)
}

func TestReadyReportsUnreachableCache(t *testing.T) {
	provider := &fakeTableProvider{table: &dataset.Table{}}
	h := NewMetricsHandler(service.NewMetricsService(), provider, &fakePinger{err: errors.New("refused")})

	rec, _ := perform(t, h.Ready, http.MethodGet, "/ready", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache":"unreachable"`)
}

func TestHealth(t *testing.T) {
	h := NewMetricsHandler(nil, nil, nil)

	rec, _ := perform(t, h.Health, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
