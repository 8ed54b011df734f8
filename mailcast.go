package mailcast

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailcast/internal"
	"github.com/dmitrymomot/mailcast/pkg/health"
)

type (
	App             = internal.App
	Router          = internal.Router
	Context         = internal.Context
	Handler         = internal.Handler
	HandlerFunc     = internal.HandlerFunc
	Middleware      = internal.Middleware
	ErrorHandler    = internal.ErrorHandler
	Option          = internal.Option
	RunOption       = internal.RunOption
	HealthOption    = internal.HealthOption
	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption
	ResponseWriter  = internal.ResponseWriter
)

// ErrInvalidJSON is wrapped by every Context.BindJSON failure.
var ErrInvalidJSON = internal.ErrInvalidJSON

// New creates an App. It is immutable after creation.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

func WithMount(pattern string, h http.Handler) Option {
	return internal.WithMount(pattern, h)
}

func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks registers liveness and readiness endpoints.
//
//	mailcast.WithHealthChecks(
//	    mailcast.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options.

func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

func ReadHeaderTimeout(d time.Duration) RunOption {
	return internal.ReadHeaderTimeout(d)
}

func WriteTimeout(d time.Duration) RunOption {
	return internal.WriteTimeout(d)
}

func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

func Listener(ln net.Listener) RunOption {
	return internal.Listener(ln)
}

// HTTP errors.

func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrMethodNotAllowed(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// AsHTTPError returns the first HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// ContextValue reads a typed value stored with Context.Set.
//
//	id := mailcast.ContextValue[string](c, requestIDKey{})
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}
