package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type responseEnvelope struct {
	Status    string                 `json:"status"`
	Message   string                 `json:"message"`
	ErrorCode string                 `json:"error_code"`
	Data      json.RawMessage        `json:"data"`
	Meta      map[string]interface{} `json:"meta"`
}

func perform(t *testing.T, fn gin.HandlerFunc, method, target string, body io.Reader, params ...gin.Param) (*httptest.ResponseRecorder, responseEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	c.Params = params

	fn(c)

	var envelope responseEnvelope
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	}
	return rec, envelope
}

func decodeData(t *testing.T, envelope responseEnvelope, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}
