package service

import (
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/grouping"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/models"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

func toAPISession(s *models.Session) *eventapi.Session {
	return &eventapi.Session{
		ID:          s.ID,
		Name:        s.Name,
		GroupSize:   s.GroupSize,
		AllowRepeat: s.AllowRepeat,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// RosterMessage converts a roster for the wire.
func RosterMessage(r *event.Roster) *eventapi.Roster {
	return &eventapi.Roster{
		Names:      nonNil(r.Names),
		Duplicates: nonNil(r.Duplicates),
		Redundant:  r.Redundant,
	}
}

func toAPIDrawState(s *event.DrawState) *eventapi.DrawState {
	return &eventapi.DrawState{
		Drawing:     s.Drawing,
		Current:     s.Current,
		Tick:        s.Tick,
		Ticks:       s.Ticks,
		Winners:     nonNil(s.Winners),
		AllowRepeat: s.AllowRepeat,
		Eligible:    s.Eligible,
	}
}

func toAPIGroups(groups [][]string) []*eventapi.Group {
	out := make([]*eventapi.Group, len(groups))
	for i, members := range groups {
		out[i] = &eventapi.Group{
			Label:   grouping.Label(i),
			Members: members,
		}
	}
	return out
}

// nonNil keeps empty lists as [] rather than null on the wire.
func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
