package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// DrawService implements the Connect DrawService.
type DrawService struct {
	manager *event.Manager
}

// NewDrawService creates a new DrawService.
func NewDrawService(manager *event.Manager) *DrawService {
	return &DrawService{manager: manager}
}

// StartDraw kicks off the animation. Clients poll GetDrawState to follow it.
func (s *DrawService) StartDraw(ctx context.Context, req *connect.Request[eventapi.StartDrawRequest]) (*connect.Response[eventapi.StartDrawResponse], error) {
	slog.Info("StartDraw request received", "session_id", req.Msg.SessionID)

	if err := s.manager.StartDraw(ctx, req.Msg.SessionID); err != nil {
		slog.Error("StartDraw failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	state, err := s.state(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&eventapi.StartDrawResponse{State: state}), nil
}

// GetDrawState returns the name on display and the winner history.
func (s *DrawService) GetDrawState(ctx context.Context, req *connect.Request[eventapi.GetDrawStateRequest]) (*connect.Response[eventapi.GetDrawStateResponse], error) {
	state, err := s.state(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&eventapi.GetDrawStateResponse{State: state}), nil
}

// SetAllowRepeat toggles whether past winners stay in the pool.
func (s *DrawService) SetAllowRepeat(ctx context.Context, req *connect.Request[eventapi.SetAllowRepeatRequest]) (*connect.Response[eventapi.SetAllowRepeatResponse], error) {
	slog.Info("SetAllowRepeat request received",
		"session_id", req.Msg.SessionID,
		"allow_repeat", req.Msg.AllowRepeat,
	)

	if err := s.manager.SetAllowRepeat(ctx, req.Msg.SessionID, req.Msg.AllowRepeat); err != nil {
		slog.Error("SetAllowRepeat failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	state, err := s.state(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&eventapi.SetAllowRepeatResponse{State: state}), nil
}

// ResetDraw clears the winner history once the caller confirms.
func (s *DrawService) ResetDraw(ctx context.Context, req *connect.Request[eventapi.ResetDrawRequest]) (*connect.Response[eventapi.ResetDrawResponse], error) {
	slog.Info("ResetDraw request received",
		"session_id", req.Msg.SessionID,
		"confirm", req.Msg.Confirm,
	)

	if err := s.manager.ResetDraw(ctx, req.Msg.SessionID, req.Msg.Confirm); err != nil {
		slog.Error("ResetDraw failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	state, err := s.state(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&eventapi.ResetDrawResponse{State: state}), nil
}

func (s *DrawService) state(ctx context.Context, sessionID string) (*eventapi.DrawState, error) {
	state, err := s.manager.DrawState(ctx, sessionID)
	if err != nil {
		slog.Error("GetDrawState failed", "session_id", sessionID, "error", err)
		return nil, toConnectError(err)
	}
	return toAPIDrawState(state), nil
}
