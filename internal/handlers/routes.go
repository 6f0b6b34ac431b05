package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Access is the authorization requirement of a route.
type Access int

const (
	Public Access = iota
	Authenticated
	AdminOnly
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin"
	}
	return fmt.Sprintf("Access(%d)", int(a))
}

// Route is one entry of the route table.
type Route struct {
	Method  string
	Pattern string
	Access  Access
	Handler http.HandlerFunc
}

// Gates are the middlewares enforcing Authenticated and AdminOnly.
type Gates struct {
	Authenticate func(http.Handler) http.Handler
	Authorize    func(http.Handler) http.Handler
}

// Mount registers every route on r behind the gates its access level needs.
func Mount(r chi.Router, routes []Route, gates Gates) {
	for _, route := range routes {
		switch route.Access {
		case Public:
			r.Method(route.Method, route.Pattern, route.Handler)
		case Authenticated:
			r.With(gates.Authenticate).Method(route.Method, route.Pattern, route.Handler)
		case AdminOnly:
			r.With(gates.Authenticate, gates.Authorize).Method(route.Method, route.Pattern, route.Handler)
		default:
			panic(fmt.Sprintf("route %s %s: unknown access %v", route.Method, route.Pattern, route.Access))
		}
	}
}
