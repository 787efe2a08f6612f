package app

import (
	"fmt"
	"regexp"

	sdk "github.com/bnb-chain/tokenvote/types"
)

var isAlphaNumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`).MatchString

// Router dispatches messages to module handlers by Msg.Route().
type Router struct {
	routes map[string]sdk.Handler
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]sdk.Handler),
	}
}

// AddRoute registers a handler for a route. It panics on a duplicate or
// malformed route, both being wiring mistakes.
func (rtr *Router) AddRoute(path string, h sdk.Handler) *Router {
	if !isAlphaNumeric(path) {
		panic("route expressions can only contain alphanumeric characters")
	}
	if rtr.routes[path] != nil {
		panic(fmt.Sprintf("route %s has already been initialized", path))
	}

	rtr.routes[path] = h
	return rtr
}

func (rtr *Router) Route(path string) sdk.Handler {
	return rtr.routes[path]
}

// QueryRouter dispatches "custom/<route>/..." queries to module queriers.
type QueryRouter struct {
	routes map[string]sdk.Querier
}

func NewQueryRouter() *QueryRouter {
	return &QueryRouter{
		routes: make(map[string]sdk.Querier),
	}
}

func (qrt *QueryRouter) AddRoute(path string, q sdk.Querier) *QueryRouter {
	if !isAlphaNumeric(path) {
		panic("route expressions can only contain alphanumeric characters")
	}
	if qrt.routes[path] != nil {
		panic(fmt.Sprintf("route %s has already been initialized", path))
	}

	qrt.routes[path] = q
	return qrt
}

func (qrt *QueryRouter) Route(path string) sdk.Querier {
	return qrt.routes[path]
}
