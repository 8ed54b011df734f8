// Package handlers implements the mailcast HTTP API: contact CRUD under
// /emails and bulk delivery under /send-email. All responses are JSON.
package handlers
