package internal

// Handler declares routes on a router.
//
//	func (h *Contacts) Routes(r mailcast.Router) {
//	    r.GET("/emails", h.list)
//	    r.POST("/emails", h.add)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A non-nil error is passed to the ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
