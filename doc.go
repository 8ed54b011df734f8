// Package mailcast is a contact list and bulk email notifier.
//
// The root package exposes the HTTP application core: App, Router, Context and
// the options used to assemble them. Route handlers live in internal/handlers
// and the binary in cmd/mailcast.
//
//	app := mailcast.New(
//	    mailcast.WithLogger(log),
//	    mailcast.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    mailcast.WithHandlers(handlers.NewContacts(store), handlers.NewBroadcast(n)),
//	    mailcast.WithHealthChecks(),
//	)
//	err := app.Run(":8080", mailcast.ShutdownHook(db.Shutdown(pool)))
package mailcast
