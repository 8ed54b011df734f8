package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailcast/internal"
)

// RequestObserver records finished HTTP requests.
type RequestObserver interface {
	RequestStarted()
	RequestFinished(method, route string, status int, elapsed time.Duration)
}

// unmatchedRoute labels requests that hit no route, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics reports every request to obs once the response is complete.
// Routes are labelled by their chi pattern, not the raw path.
func Metrics(obs RequestObserver) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		if obs == nil {
			return next
		}
		return func(c internal.Context) error {
			start := time.Now()
			obs.RequestStarted()

			err := next(c)

			status := http.StatusOK
			if rw, ok := c.Response().(interface{ Status() int }); ok {
				status = rw.Status()
			}
			if err != nil && !c.Written() {
				status = http.StatusInternalServerError
				if httpErr := internal.AsHTTPError(err); httpErr != nil {
					status = httpErr.Code
				}
			}

			obs.RequestFinished(c.Request().Method, routePattern(c.Request()), status, time.Since(start))
			return err
		}
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}
