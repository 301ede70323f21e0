package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagger(tag string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouteAndParam(t *testing.T) {
	r := New()
	r.Get("/items/{id}", "items.show", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(Param(req, "id")))
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	r := New()
	api := r.Group("/api", tagger("group"))
	api.Get("/ping", "ping", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, tagger("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))
}

func TestNestedGroups(t *testing.T) {
	r := New()
	admin := r.Group("/api").Group("/admin")
	admin.Get("/stats", "admin.stats", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	noop := func(w http.ResponseWriter, req *http.Request) {}
	r.Post("/b", "b.post", noop)
	r.Get("/a", "a.get", noop)
	r.Get("/b", "b.get", noop)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "a.get", infos[0].Name)
	assert.Equal(t, "b.get", infos[1].Name)
	assert.Equal(t, "b.post", infos[2].Name)
}
