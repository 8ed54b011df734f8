package internal

import "net/http"

// ResponseWriter remembers the status code and body size so middleware can
// report them after the handler returns.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

// NewResponseWriter wraps w. Wrapping a *ResponseWriter returns it unchanged,
// so every layer of the chain shares one status.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends the first status code and drops the rest.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.status, w.written = code, true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(w.status)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status is 200 until a header is written.
func (w *ResponseWriter) Status() int { return w.status }

func (w *ResponseWriter) Size() int64 { return w.size }

func (w *ResponseWriter) Written() bool { return w.written }

// Unwrap lets http.ResponseController reach Flush and deadlines on the
// underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
