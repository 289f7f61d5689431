package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "oasis/internal/platform/net/http"
	kit "oasis/internal/platform/testkit"
)

type cursorBody struct {
	Offset int `json:"offset" validate:"min=0"`
	Window int `json:"window" validate:"omitempty,min=1"`
}

func sugarRouter() phttp.Router {
	r := phttp.AdaptChi(chi.NewRouter())
	PostJSON[cursorBody](r, "/browse", func(_ *http.Request, in cursorBody) (any, error) {
		return map[string]int{"offset": in.Offset, "window": in.Window}, nil
	})
	Get(r, "/groups", func(_ *http.Request) (any, error) { return []string{"EPL_live"}, nil })
	Post(r, "/refresh", func(_ *http.Request) (any, error) {
		return Response{Status: http.StatusAccepted, Body: map[string]bool{"ran": false}}, nil
	})
	return r
}

func TestSugar_Routes(t *testing.T) {
	r := sugarRouter()

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
		want   string
	}{
		{"post json binds", http.MethodPost, "/browse", `{"offset":2,"window":5}`, http.StatusOK, `"window":5`},
		{"post json validates", http.MethodPost, "/browse", `{"offset":-1}`, http.StatusBadRequest, `"error":`},
		{"post json rejects unknown fields", http.MethodPost, "/browse", `{"offset":0,"page":1}`, http.StatusBadRequest, `"error":`},
		{"get envelope", http.MethodGet, "/groups", "", http.StatusOK, `"EPL_live"`},
		{"post passes response through", http.MethodPost, "/refresh", "", http.StatusAccepted, `"ran":false`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Fatalf("%s %s = %d body=%s", tc.method, tc.path, rec.Code, rec.Body.String())
			}
			kit.MustContain(t, rec.Body.String(), tc.want)
		})
	}
}

func TestSugar_WrongVerbIsNotMounted(t *testing.T) {
	r := sugarRouter()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/browse", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /browse = %d, want 405", rec.Code)
	}
}
