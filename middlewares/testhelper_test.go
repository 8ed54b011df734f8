package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/mailcast"
)

type routes func(r mailcast.Router)

func (f routes) Routes(r mailcast.Router) { f(r) }

// serve runs req through an App built with mw and a single route at "/".
func serve(t *testing.T, req *http.Request, h mailcast.HandlerFunc, opts ...mailcast.Option) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, mailcast.WithHandlers(routes(func(r mailcast.Router) {
		r.GET("/", h)
		r.POST("/", h)
		r.GET("/items/{id}", h)
	})))
	app := mailcast.New(opts...)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func ok(c mailcast.Context) error {
	return c.String(http.StatusOK, "ok")
}
