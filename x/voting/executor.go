package voting

import (
	"fmt"
	"regexp"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// ActionHandler applies one action payload. Returning an error, or panicking,
// fails the whole script.
type ActionHandler func(ctx sdk.Context, payload []byte) sdk.Error

var isAlphaNumeric = regexp.MustCompile(`^[a-zA-Z0-9_]+$`).MatchString

// Router maps action targets to their handlers.
type Router struct {
	routes map[string]ActionHandler
	sealed bool
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]ActionHandler),
	}
}

// AddRoute registers a handler for target. It panics on a duplicate or
// malformed target, or once the router is sealed.
func (rtr *Router) AddRoute(target string, h ActionHandler) *Router {
	if rtr.sealed {
		panic("router sealed; cannot register action handlers")
	}
	if !isAlphaNumeric(target) {
		panic(fmt.Sprintf("action target %q must be alphanumeric", target))
	}
	if rtr.HasRoute(target) {
		panic(fmt.Sprintf("action target %q has already been registered", target))
	}
	rtr.routes[target] = h
	return rtr
}

// Seal prevents further registration.
func (rtr *Router) Seal() {
	rtr.sealed = true
}

func (rtr *Router) HasRoute(target string) bool {
	_, ok := rtr.routes[target]
	return ok
}

// Route returns the handler of target, or nil.
func (rtr *Router) Route(target string) ActionHandler {
	return rtr.routes[target]
}

// Executor runs scripts all or nothing.
type Executor struct {
	router *Router
}

func NewExecutor(router *Router) Executor {
	return Executor{router: router}
}

// Run applies script in order on a branch of ctx. Writes and events reach ctx
// only if every action succeeds; otherwise the branch is dropped and the index
// of the failing action is returned with its error.
func (e Executor) Run(ctx sdk.Context, script Script) (failedAt int, err sdk.Error) {
	if len(script) == 0 {
		return -1, nil
	}
	stagedCtx, writeCache := ctx.CacheContext()
	for i, action := range script {
		if err := e.runAction(stagedCtx, action); err != nil {
			return i, err
		}
	}
	writeCache()
	return -1, nil
}

func (e Executor) runAction(ctx sdk.Context, action Action) (err sdk.Error) {
	handler := e.router.Route(action.Target)
	if handler == nil {
		return ErrUnknownTarget(action.Target)
	}
	defer func() {
		if r := recover(); r != nil {
			err = sdk.ErrInternal(fmt.Sprintf("action on %q panicked: %v", action.Target, r))
		}
	}()
	return handler(ctx, action.Payload)
}
