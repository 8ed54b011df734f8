package mailcast_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcast"
)

type greeter struct{}

type nameKey struct{}

func (greeter) Routes(r mailcast.Router) {
	r.GET("/hello", func(c mailcast.Context) error {
		return c.String(http.StatusOK, "hello "+mailcast.ContextValue[string](c, nameKey{}))
	})
	r.GET("/fail", func(c mailcast.Context) error {
		return mailcast.ErrBadRequest("Invalid input")
	})
}

func TestFacade(t *testing.T) {
	t.Parallel()

	app := mailcast.New(
		mailcast.WithMiddleware(func(next mailcast.HandlerFunc) mailcast.HandlerFunc {
			return func(c mailcast.Context) error {
				c.Set(nameKey{}, "mailcast")
				return next(c)
			}
		}),
		mailcast.WithHandlers(greeter{}),
		mailcast.WithErrorHandler(func(c mailcast.Context, err error) error {
			if httpErr := mailcast.AsHTTPError(err); httpErr != nil {
				return c.JSON(httpErr.Code, map[string]string{"error": httpErr.Message})
			}
			return err
		}),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello mailcast", rec.Body.String())

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Invalid input"}`, rec.Body.String())
}

func TestContextValue_Missing(t *testing.T) {
	t.Parallel()

	app := mailcast.New(mailcast.WithHandlers(handlerFunc(func(r mailcast.Router) {
		r.GET("/", func(c mailcast.Context) error {
			require.Zero(t, mailcast.ContextValue[int](c, nameKey{}))
			return c.NoContent(http.StatusNoContent)
		})
	})))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

type handlerFunc func(r mailcast.Router)

func (f handlerFunc) Routes(r mailcast.Router) { f(r) }
