package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/auth"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/middleware"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// Route is a Connect service handler and the path prefix it serves.
type Route struct {
	Path    string
	Handler http.Handler
}

// Routes builds every Connect service with request logging and session
// token checks. Only CreateSession may be called without a token.
func Routes(manager *event.Manager, jwtManager *auth.JWTManager, opts ...connect.HandlerOption) []Route {
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireSession(jwtManager, eventapi.SessionServiceCreateSessionProcedure),
	)
	opts = append([]connect.HandlerOption{interceptors}, opts...)

	var routes []Route
	add := func(path string, h http.Handler) {
		routes = append(routes, Route{Path: path, Handler: h})
	}
	add(eventapi.NewSessionServiceHandler(NewSessionService(manager, jwtManager), opts...))
	add(eventapi.NewParticipantServiceHandler(NewParticipantService(manager), opts...))
	add(eventapi.NewDrawServiceHandler(NewDrawService(manager), opts...))
	add(eventapi.NewGroupServiceHandler(NewGroupService(manager), opts...))
	return routes
}
