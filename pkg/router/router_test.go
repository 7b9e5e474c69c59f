package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteLookup(t *testing.T) {
	r := New()
	r.Get("/products/{slug}", "products.show", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/products/{slug}", path)

	url, err := r.URL("products.show", map[string]string{"slug": "signature-hoops"})
	require.NoError(t, err)
	assert.Equal(t, "/products/signature-hoops", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	admin := r.Group("/api/admin", mw("outer"))
	admin.Get("/inventory", "admin.inventory.index", ok, mw("inner"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/inventory", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	r.Post("/cart/lines", "cart.add", ok)
	r.Get("/cart", "cart.show", ok)
	r.Delete("/cart", "cart.clear", ok)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/cart", infos[0].Path)
	assert.Equal(t, http.MethodDelete, infos[0].Method)
	assert.Equal(t, http.MethodGet, infos[1].Method)
	assert.Equal(t, "/cart/lines", infos[2].Path)
}
