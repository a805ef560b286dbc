package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/auth"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// SessionService implements the Connect SessionService.
type SessionService struct {
	manager    *event.Manager
	jwtManager *auth.JWTManager
}

// NewSessionService creates a new SessionService.
func NewSessionService(manager *event.Manager, jwtManager *auth.JWTManager) *SessionService {
	return &SessionService{manager: manager, jwtManager: jwtManager}
}

// CreateSession starts a session and issues the token that unlocks it.
func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[eventapi.CreateSessionRequest]) (*connect.Response[eventapi.CreateSessionResponse], error) {
	slog.Info("CreateSession request received", "name", req.Msg.Name)

	session, err := s.manager.CreateSession(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(session.ID)
	if err != nil {
		slog.Error("Failed to generate token", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&eventapi.CreateSessionResponse{
		Session: toAPISession(session),
		Token:   token,
	}), nil
}

// GetSession returns a session's settings.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[eventapi.GetSessionRequest]) (*connect.Response[eventapi.GetSessionResponse], error) {
	session, err := s.manager.Session(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("GetSession failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.GetSessionResponse{
		Session: toAPISession(session),
	}), nil
}

// DeleteSession stops the session's engines and forgets it.
func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[eventapi.DeleteSessionRequest]) (*connect.Response[eventapi.DeleteSessionResponse], error) {
	slog.Info("DeleteSession request received", "session_id", req.Msg.SessionID)

	if err := s.manager.CloseSession(ctx, req.Msg.SessionID); err != nil {
		slog.Error("DeleteSession failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.DeleteSessionResponse{}), nil
}
