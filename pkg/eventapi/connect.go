// Package eventapi defines the Connect RPC surface of the event helper:
// procedure names, request and response messages, handler constructors and
// a typed client. Messages are plain structs carried by a JSON codec.
package eventapi

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Fully-qualified service names.
const (
	SessionServiceName     = "hrevent.v1.SessionService"
	ParticipantServiceName = "hrevent.v1.ParticipantService"
	DrawServiceName        = "hrevent.v1.DrawService"
	GroupServiceName       = "hrevent.v1.GroupService"
)

// Procedure paths, as routed by the handlers below.
const (
	SessionServiceCreateSessionProcedure         = "/hrevent.v1.SessionService/CreateSession"
	SessionServiceGetSessionProcedure            = "/hrevent.v1.SessionService/GetSession"
	SessionServiceDeleteSessionProcedure         = "/hrevent.v1.SessionService/DeleteSession"
	ParticipantServiceAddParticipantsProcedure   = "/hrevent.v1.ParticipantService/AddParticipants"
	ParticipantServiceLoadSampleProcedure        = "/hrevent.v1.ParticipantService/LoadSample"
	ParticipantServiceRemoveParticipantProcedure = "/hrevent.v1.ParticipantService/RemoveParticipant"
	ParticipantServiceClearParticipantsProcedure = "/hrevent.v1.ParticipantService/ClearParticipants"
	ParticipantServiceRemoveDuplicatesProcedure  = "/hrevent.v1.ParticipantService/RemoveDuplicates"
	ParticipantServiceListParticipantsProcedure  = "/hrevent.v1.ParticipantService/ListParticipants"
	DrawServiceStartDrawProcedure                = "/hrevent.v1.DrawService/StartDraw"
	DrawServiceGetDrawStateProcedure             = "/hrevent.v1.DrawService/GetDrawState"
	DrawServiceSetAllowRepeatProcedure           = "/hrevent.v1.DrawService/SetAllowRepeat"
	DrawServiceResetDrawProcedure                = "/hrevent.v1.DrawService/ResetDraw"
	GroupServiceGenerateGroupsProcedure          = "/hrevent.v1.GroupService/GenerateGroups"
	GroupServiceGetGroupsProcedure               = "/hrevent.v1.GroupService/GetGroups"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// route serves the handler registered for the request path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// SessionServiceHandler is implemented by the server side of SessionService.
type SessionServiceHandler interface {
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
}

// NewSessionServiceHandler builds an HTTP handler for every SessionService procedure.
// It returns the path prefix to mount it on.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SessionServiceName + "/", route(map[string]http.Handler{
		SessionServiceCreateSessionProcedure: connect.NewUnaryHandler(SessionServiceCreateSessionProcedure, svc.CreateSession, opts...),
		SessionServiceGetSessionProcedure:    connect.NewUnaryHandler(SessionServiceGetSessionProcedure, svc.GetSession, opts...),
		SessionServiceDeleteSessionProcedure: connect.NewUnaryHandler(SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts...),
	})
}

// ParticipantServiceHandler is implemented by the server side of ParticipantService.
type ParticipantServiceHandler interface {
	AddParticipants(context.Context, *connect.Request[AddParticipantsRequest]) (*connect.Response[AddParticipantsResponse], error)
	LoadSample(context.Context, *connect.Request[LoadSampleRequest]) (*connect.Response[LoadSampleResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	ClearParticipants(context.Context, *connect.Request[ClearParticipantsRequest]) (*connect.Response[ClearParticipantsResponse], error)
	RemoveDuplicates(context.Context, *connect.Request[RemoveDuplicatesRequest]) (*connect.Response[RemoveDuplicatesResponse], error)
	ListParticipants(context.Context, *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error)
}

// NewParticipantServiceHandler builds an HTTP handler for every ParticipantService procedure.
// It returns the path prefix to mount it on.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ParticipantServiceName + "/", route(map[string]http.Handler{
		ParticipantServiceAddParticipantsProcedure:   connect.NewUnaryHandler(ParticipantServiceAddParticipantsProcedure, svc.AddParticipants, opts...),
		ParticipantServiceLoadSampleProcedure:        connect.NewUnaryHandler(ParticipantServiceLoadSampleProcedure, svc.LoadSample, opts...),
		ParticipantServiceRemoveParticipantProcedure: connect.NewUnaryHandler(ParticipantServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		ParticipantServiceClearParticipantsProcedure: connect.NewUnaryHandler(ParticipantServiceClearParticipantsProcedure, svc.ClearParticipants, opts...),
		ParticipantServiceRemoveDuplicatesProcedure:  connect.NewUnaryHandler(ParticipantServiceRemoveDuplicatesProcedure, svc.RemoveDuplicates, opts...),
		ParticipantServiceListParticipantsProcedure:  connect.NewUnaryHandler(ParticipantServiceListParticipantsProcedure, svc.ListParticipants, opts...),
	})
}

// DrawServiceHandler is implemented by the server side of DrawService.
type DrawServiceHandler interface {
	StartDraw(context.Context, *connect.Request[StartDrawRequest]) (*connect.Response[StartDrawResponse], error)
	GetDrawState(context.Context, *connect.Request[GetDrawStateRequest]) (*connect.Response[GetDrawStateResponse], error)
	SetAllowRepeat(context.Context, *connect.Request[SetAllowRepeatRequest]) (*connect.Response[SetAllowRepeatResponse], error)
	ResetDraw(context.Context, *connect.Request[ResetDrawRequest]) (*connect.Response[ResetDrawResponse], error)
}

// NewDrawServiceHandler builds an HTTP handler for every DrawService procedure.
// It returns the path prefix to mount it on.
func NewDrawServiceHandler(svc DrawServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + DrawServiceName + "/", route(map[string]http.Handler{
		DrawServiceStartDrawProcedure:      connect.NewUnaryHandler(DrawServiceStartDrawProcedure, svc.StartDraw, opts...),
		DrawServiceGetDrawStateProcedure:   connect.NewUnaryHandler(DrawServiceGetDrawStateProcedure, svc.GetDrawState, opts...),
		DrawServiceSetAllowRepeatProcedure: connect.NewUnaryHandler(DrawServiceSetAllowRepeatProcedure, svc.SetAllowRepeat, opts...),
		DrawServiceResetDrawProcedure:      connect.NewUnaryHandler(DrawServiceResetDrawProcedure, svc.ResetDraw, opts...),
	})
}

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	GenerateGroups(context.Context, *connect.Request[GenerateGroupsRequest]) (*connect.Response[GenerateGroupsResponse], error)
	GetGroups(context.Context, *connect.Request[GetGroupsRequest]) (*connect.Response[GetGroupsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for every GroupService procedure.
// It returns the path prefix to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GroupServiceName + "/", route(map[string]http.Handler{
		GroupServiceGenerateGroupsProcedure: connect.NewUnaryHandler(GroupServiceGenerateGroupsProcedure, svc.GenerateGroups, opts...),
		GroupServiceGetGroupsProcedure:      connect.NewUnaryHandler(GroupServiceGetGroupsProcedure, svc.GetGroups, opts...),
	})
}

// Client calls every procedure of the event helper. Authorization is left
// to interceptors passed in opts, usually BearerToken.
type Client struct {
	createSession     *connect.Client[CreateSessionRequest, CreateSessionResponse]
	getSession        *connect.Client[GetSessionRequest, GetSessionResponse]
	deleteSession     *connect.Client[DeleteSessionRequest, DeleteSessionResponse]
	addParticipants   *connect.Client[AddParticipantsRequest, AddParticipantsResponse]
	loadSample        *connect.Client[LoadSampleRequest, LoadSampleResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	clearParticipants *connect.Client[ClearParticipantsRequest, ClearParticipantsResponse]
	removeDuplicates  *connect.Client[RemoveDuplicatesRequest, RemoveDuplicatesResponse]
	listParticipants  *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	startDraw         *connect.Client[StartDrawRequest, StartDrawResponse]
	getDrawState      *connect.Client[GetDrawStateRequest, GetDrawStateResponse]
	setAllowRepeat    *connect.Client[SetAllowRepeatRequest, SetAllowRepeatResponse]
	resetDraw         *connect.Client[ResetDrawRequest, ResetDrawResponse]
	generateGroups    *connect.Client[GenerateGroupsRequest, GenerateGroupsResponse]
	getGroups         *connect.Client[GetGroupsRequest, GetGroupsResponse]
}

// NewClient creates a Client for the server at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = clientOptions(opts)
	return &Client{
		createSession:     connect.NewClient[CreateSessionRequest, CreateSessionResponse](httpClient, baseURL+SessionServiceCreateSessionProcedure, opts...),
		getSession:        connect.NewClient[GetSessionRequest, GetSessionResponse](httpClient, baseURL+SessionServiceGetSessionProcedure, opts...),
		deleteSession:     connect.NewClient[DeleteSessionRequest, DeleteSessionResponse](httpClient, baseURL+SessionServiceDeleteSessionProcedure, opts...),
		addParticipants:   connect.NewClient[AddParticipantsRequest, AddParticipantsResponse](httpClient, baseURL+ParticipantServiceAddParticipantsProcedure, opts...),
		loadSample:        connect.NewClient[LoadSampleRequest, LoadSampleResponse](httpClient, baseURL+ParticipantServiceLoadSampleProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+ParticipantServiceRemoveParticipantProcedure, opts...),
		clearParticipants: connect.NewClient[ClearParticipantsRequest, ClearParticipantsResponse](httpClient, baseURL+ParticipantServiceClearParticipantsProcedure, opts...),
		removeDuplicates:  connect.NewClient[RemoveDuplicatesRequest, RemoveDuplicatesResponse](httpClient, baseURL+ParticipantServiceRemoveDuplicatesProcedure, opts...),
		listParticipants:  connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+ParticipantServiceListParticipantsProcedure, opts...),
		startDraw:         connect.NewClient[StartDrawRequest, StartDrawResponse](httpClient, baseURL+DrawServiceStartDrawProcedure, opts...),
		getDrawState:      connect.NewClient[GetDrawStateRequest, GetDrawStateResponse](httpClient, baseURL+DrawServiceGetDrawStateProcedure, opts...),
		setAllowRepeat:    connect.NewClient[SetAllowRepeatRequest, SetAllowRepeatResponse](httpClient, baseURL+DrawServiceSetAllowRepeatProcedure, opts...),
		resetDraw:         connect.NewClient[ResetDrawRequest, ResetDrawResponse](httpClient, baseURL+DrawServiceResetDrawProcedure, opts...),
		generateGroups:    connect.NewClient[GenerateGroupsRequest, GenerateGroupsResponse](httpClient, baseURL+GroupServiceGenerateGroupsProcedure, opts...),
		getGroups:         connect.NewClient[GetGroupsRequest, GetGroupsResponse](httpClient, baseURL+GroupServiceGetGroupsProcedure, opts...),
	}
}

func (c *Client) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *Client) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *Client) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

func (c *Client) AddParticipants(ctx context.Context, req *connect.Request[AddParticipantsRequest]) (*connect.Response[AddParticipantsResponse], error) {
	return c.addParticipants.CallUnary(ctx, req)
}

func (c *Client) LoadSample(ctx context.Context, req *connect.Request[LoadSampleRequest]) (*connect.Response[LoadSampleResponse], error) {
	return c.loadSample.CallUnary(ctx, req)
}

func (c *Client) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *Client) ClearParticipants(ctx context.Context, req *connect.Request[ClearParticipantsRequest]) (*connect.Response[ClearParticipantsResponse], error) {
	return c.clearParticipants.CallUnary(ctx, req)
}

func (c *Client) RemoveDuplicates(ctx context.Context, req *connect.Request[RemoveDuplicatesRequest]) (*connect.Response[RemoveDuplicatesResponse], error) {
	return c.removeDuplicates.CallUnary(ctx, req)
}

func (c *Client) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *Client) StartDraw(ctx context.Context, req *connect.Request[StartDrawRequest]) (*connect.Response[StartDrawResponse], error) {
	return c.startDraw.CallUnary(ctx, req)
}

func (c *Client) GetDrawState(ctx context.Context, req *connect.Request[GetDrawStateRequest]) (*connect.Response[GetDrawStateResponse], error) {
	return c.getDrawState.CallUnary(ctx, req)
}

func (c *Client) SetAllowRepeat(ctx context.Context, req *connect.Request[SetAllowRepeatRequest]) (*connect.Response[SetAllowRepeatResponse], error) {
	return c.setAllowRepeat.CallUnary(ctx, req)
}

func (c *Client) ResetDraw(ctx context.Context, req *connect.Request[ResetDrawRequest]) (*connect.Response[ResetDrawResponse], error) {
	return c.resetDraw.CallUnary(ctx, req)
}

func (c *Client) GenerateGroups(ctx context.Context, req *connect.Request[GenerateGroupsRequest]) (*connect.Response[GenerateGroupsResponse], error) {
	return c.generateGroups.CallUnary(ctx, req)
}

func (c *Client) GetGroups(ctx context.Context, req *connect.Request[GetGroupsRequest]) (*connect.Response[GetGroupsResponse], error) {
	return c.getGroups.CallUnary(ctx, req)
}

// BearerToken attaches a session token to every outgoing request.
func BearerToken(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}
