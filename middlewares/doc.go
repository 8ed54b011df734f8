// Package middlewares provides the HTTP middleware used by mailcast.
//
// Recommended order:
//
//	mailcast.WithMiddleware(
//	    middlewares.CORS(middlewares.WithAllowOrigins(cfg.Server.CORSAllowedOrigins...)),
//	    middlewares.RequestID(),
//	    middlewares.Metrics(m),
//	    middlewares.Recover(),
//	)
//
// CORS runs first so preflight requests are answered before anything else.
// RequestID comes before the rest so their log records carry request_id
// when the logger is built with RequestIDExtractor:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// Recover returns a *PanicError; the application ErrorHandler turns it into a 500.
package middlewares
