package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

type fakeAuthSrv struct {
	resp     *models.LoginResponse
	err      error
	lastUser string
}

func (f *fakeAuthSrv) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.lastUser = req.Username
	return f.resp, f.err
}

func TestAuthLoginSuccess(t *testing.T) {
	srv := &fakeAuthSrv{resp: &models.LoginResponse{Token: "jwt", TokenType: "Bearer", ExpiresIn: 3600}}
	h := NewAuthHandler(srv)

	body := strings.NewReader(`{"username":"admin","password":"s3cret"}`)
	rec, envelope := perform(t, h.Login, http.MethodPost, "/auth/login", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", srv.lastUser)
	var resp models.LoginResponse
	decodeData(t, envelope, &resp)
	assert.Equal(t, "jwt", resp.Token)
}

func TestAuthLoginRejectsMissingPassword(t *testing.T) {
	h := NewAuthHandler(&fakeAuthSrv{})

	body := strings.NewReader(`{"username":"admin"}`)
	rec, envelope := perform(t, h.Login, http.MethodPost, "/auth/login", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ERR_VALIDATION", envelope.ErrorCode)
}

func TestAuthLoginInvalidCredentialsPassThrough(t *testing.T) {
	h := NewAuthHandler(&fakeAuthSrv{err: appErrors.ErrInvalidCredentials})

	body := strings.NewReader(`{"username":"admin","password":"wrong"}`)
	rec, envelope := perform(t, h.Login, http.MethodPost, "/auth/login", body)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_INVALID_CREDENTIALS", envelope.ErrorCode)
}
