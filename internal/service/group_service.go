package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	manager *event.Manager
}

// NewGroupService creates a new GroupService.
func NewGroupService(manager *event.Manager) *GroupService {
	return &GroupService{manager: manager}
}

// GenerateGroups shuffles the participants into groups and returns them
// once the generation delay has passed.
func (s *GroupService) GenerateGroups(ctx context.Context, req *connect.Request[eventapi.GenerateGroupsRequest]) (*connect.Response[eventapi.GenerateGroupsResponse], error) {
	slog.Info("GenerateGroups request received",
		"session_id", req.Msg.SessionID,
		"group_size", req.Msg.GroupSize,
	)

	groups, err := s.manager.GenerateGroups(ctx, req.Msg.SessionID, req.Msg.GroupSize)
	if err != nil {
		slog.Error("GenerateGroups failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.GenerateGroupsResponse{
		Groups:    toAPIGroups(groups),
		GroupSize: req.Msg.GroupSize,
	}), nil
}

// GetGroups returns the latest partition.
func (s *GroupService) GetGroups(ctx context.Context, req *connect.Request[eventapi.GetGroupsRequest]) (*connect.Response[eventapi.GetGroupsResponse], error) {
	state, err := s.manager.Groups(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("GetGroups failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&eventapi.GetGroupsResponse{
		Groups:     toAPIGroups(state.Groups),
		GroupSize:  state.Size,
		Generating: state.Generating,
	}), nil
}
