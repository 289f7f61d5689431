// Package swaggerkit provides OpenAPI swagger UI integration for HTTP services
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"

	"oasis/internal/core/version"
)

// SpecMutator lets modules add their paths or tweak the document before it is served
type SpecMutator func(map[string]any)

var (
	mutMu    sync.Mutex
	mutators []SpecMutator
)

// Register adds a spec mutator; modules call it while mounting
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutMu.Lock()
	mutators = append(mutators, m)
	mutMu.Unlock()
}

// document is the base OpenAPI document: service info, the /api/v1 server and
// the shared error envelope every module answers with
func document() map[string]any {
	info := version.Info()
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Oasis API",
			"version":     info.Version,
			"description": "Live scores, football news, fixtures and movie shelves served from feed snapshots",
		},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"paths":   map[string]any{},
		"components": map[string]any{
			"schemas": map[string]any{
				"ErrorResponse": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"status_code": map[string]any{"type": "integer", "example": 503},
						"status":      map[string]any{"type": "string", "example": "error"},
						"code":        map[string]any{"type": "string", "example": "unavailable"},
						"error":       map[string]any{"type": "string", "example": "matches feed is disabled"},
						"request_id":  map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

// serveDocJSON builds the document per request so late mutators are picked up
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec := document()
		mutMu.Lock()
		for _, m := range mutators {
			m(spec)
		}
		mutMu.Unlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
