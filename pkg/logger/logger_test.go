package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewTo_DebugOnlyInDev(t *testing.T) {
	var buf bytes.Buffer
	NewTo(&buf, "prod").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered in prod")
	}
	NewTo(&buf, "dev").Debug("shown")
	if buf.Len() == 0 {
		t.Fatalf("expected debug output in dev")
	}
}

func TestFrom_Fallbacks(t *testing.T) {
	fb := Discard()
	if From(context.Background(), fb) != fb {
		t.Fatalf("expected fallback logger")
	}
	l := Discard()
	if From(With(context.Background(), l), fb) != l {
		t.Fatalf("expected context logger")
	}
}

func TestMiddleware_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Middleware(NewTo(&buf, "prod")))
	r.GET("/x", func(c *gin.Context) {
		if From(c.Request.Context(), nil) != FromGin(c) {
			t.Errorf("request context logger differs from gin logger")
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatalf("expected request id header")
	}
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["path"] != "/x" || line["request_id"] == "" {
		t.Fatalf("unexpected log line: %v", line)
	}
}
