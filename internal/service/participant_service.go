package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// ParticipantService implements the Connect ParticipantService.
type ParticipantService struct {
	manager *event.Manager
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(manager *event.Manager) *ParticipantService {
	return &ParticipantService{manager: manager}
}

// AddParticipants appends pasted names, one per line.
func (s *ParticipantService) AddParticipants(ctx context.Context, req *connect.Request[eventapi.AddParticipantsRequest]) (*connect.Response[eventapi.AddParticipantsResponse], error) {
	slog.Info("AddParticipants request received",
		"session_id", req.Msg.SessionID,
		"text_bytes", len(req.Msg.Text),
	)

	r, added, err := s.manager.AddText(ctx, req.Msg.SessionID, req.Msg.Text)
	if err != nil {
		slog.Error("AddParticipants failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.AddParticipantsResponse{
		Added:  added,
		Roster: RosterMessage(r),
	}), nil
}

// LoadSample appends the demo roster.
func (s *ParticipantService) LoadSample(ctx context.Context, req *connect.Request[eventapi.LoadSampleRequest]) (*connect.Response[eventapi.LoadSampleResponse], error) {
	r, added, err := s.manager.AddSample(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("LoadSample failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.LoadSampleResponse{
		Added:  added,
		Roster: RosterMessage(r),
	}), nil
}

// RemoveParticipant drops one entry by position.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, req *connect.Request[eventapi.RemoveParticipantRequest]) (*connect.Response[eventapi.RemoveParticipantResponse], error) {
	slog.Info("RemoveParticipant request received",
		"session_id", req.Msg.SessionID,
		"index", req.Msg.Index,
	)

	r, err := s.manager.RemoveParticipant(ctx, req.Msg.SessionID, req.Msg.Index)
	if err != nil {
		slog.Error("RemoveParticipant failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.RemoveParticipantResponse{Roster: RosterMessage(r)}), nil
}

// ClearParticipants empties the list once the caller confirms.
func (s *ParticipantService) ClearParticipants(ctx context.Context, req *connect.Request[eventapi.ClearParticipantsRequest]) (*connect.Response[eventapi.ClearParticipantsResponse], error) {
	slog.Info("ClearParticipants request received",
		"session_id", req.Msg.SessionID,
		"confirm", req.Msg.Confirm,
	)

	r, err := s.manager.ClearParticipants(ctx, req.Msg.SessionID, req.Msg.Confirm)
	if err != nil {
		slog.Error("ClearParticipants failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.ClearParticipantsResponse{Roster: RosterMessage(r)}), nil
}

// RemoveDuplicates keeps the first occurrence of every name.
func (s *ParticipantService) RemoveDuplicates(ctx context.Context, req *connect.Request[eventapi.RemoveDuplicatesRequest]) (*connect.Response[eventapi.RemoveDuplicatesResponse], error) {
	r, removed, err := s.manager.RemoveDuplicates(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("RemoveDuplicates failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Duplicates removed", "session_id", req.Msg.SessionID, "removed", removed)

	return connect.NewResponse(&eventapi.RemoveDuplicatesResponse{
		Removed: removed,
		Roster:  RosterMessage(r),
	}), nil
}

// ListParticipants returns the list with its duplicate report.
func (s *ParticipantService) ListParticipants(ctx context.Context, req *connect.Request[eventapi.ListParticipantsRequest]) (*connect.Response[eventapi.ListParticipantsResponse], error) {
	r, err := s.manager.Roster(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("ListParticipants failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.ListParticipantsResponse{Roster: RosterMessage(r)}), nil
}
