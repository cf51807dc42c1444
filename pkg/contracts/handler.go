package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every resource handler. Routes are registered
// with their full /api path and wrap their own auth gates.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
