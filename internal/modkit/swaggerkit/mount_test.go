package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "oasis/internal/platform/net/http"
	kit "oasis/internal/platform/testkit"
)

func TestMount_Disabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, false)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("doc.json with swagger off = %d", rec.Code)
	}
}

func TestMount_ServesDocumentWithMutators(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &mutators, nil)
	Register(func(spec map[string]any) {
		spec["paths"].(map[string]any)["/matches/groups"] = map[string]any{"get": map[string]any{}}
	})
	Register(nil)

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("/api/docs = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not json: %v", err)
	}
	if doc["info"].(map[string]any)["title"] != "Oasis API" {
		t.Fatalf("info = %v", doc["info"])
	}
	kit.MustContain(t, rec.Body.String(), `"/matches/groups"`)
	kit.MustContain(t, rec.Body.String(), `"url":"/api/v1"`)
}
