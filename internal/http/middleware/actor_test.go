package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/domain"
)

func TestAttachActorParsesHeaders(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	id := uuid.New()
	var got domain.ActorRef
	var ok bool

	r := gin.New()
	r.Use(AttachActor())
	r.GET("/probe", func(c *gin.Context) {
		got, ok = ActorFrom(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Actor-Type", "agent")
	req.Header.Set("X-Actor-Id", id.String())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !ok || got.Type != domain.ActorAgent || got.ID != id {
		t.Fatalf("actor not attached: ok=%v actor=%+v", ok, got)
	}
}

func TestAttachActorRejectsBadHeaders(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachActor())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cases := map[string][2]string{
		"unknown type": {"robot", uuid.NewString()},
		"bad id":       {"agent", "not-a-uuid"},
	}
	for name, hdr := range cases {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Actor-Type", hdr[0])
		req.Header.Set("X-Actor-Id", hdr[1])
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: unexpected status %d", name, rec.Code)
		}
	}
}

func TestRequireActorBlocksAnonymous(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachActor())
	r.Use(RequireActor())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous request passed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Actor-Type", "human")
	req.Header.Set("X-Actor-Id", uuid.NewString())
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("identified request blocked: %d", rec.Code)
	}
}
