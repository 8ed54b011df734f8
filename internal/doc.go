// Package internal holds the HTTP application core: the App, its Router
// adapter over chi, the per-request Context, error types and the server
// runtime with graceful shutdown.
//
// Handlers return errors instead of writing failure responses themselves; the
// configured ErrorHandler turns them into responses. The public facade lives in
// the root mailcast package, which re-exports these types.
package internal
