package eventapi

// SessionScoped is implemented by every request that targets one session.
// The auth interceptor checks the caller's token against SessionScope.
type SessionScoped interface {
	SessionScope() string
}

// SessionRef names the session a request acts on.
type SessionRef struct {
	SessionID string `json:"session_id"`
}

// SessionScope implements SessionScoped.
func (r SessionRef) SessionScope() string { return r.SessionID }

type Session struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GroupSize   int    `json:"group_size"`
	AllowRepeat bool   `json:"allow_repeat"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// Roster is a participant list with its duplicate report.
type Roster struct {
	Names []string `json:"names"`
	// Duplicates lists names entered more than once, in first-seen order.
	Duplicates []string `json:"duplicates"`
	// Redundant is how many entries RemoveDuplicates would drop.
	Redundant int `json:"redundant"`
}

type DrawState struct {
	Drawing     bool     `json:"drawing"`
	Current     string   `json:"current"`
	Tick        int      `json:"tick"`
	Ticks       int      `json:"ticks"`
	Winners     []string `json:"winners"`
	AllowRepeat bool     `json:"allow_repeat"`
	Eligible    int      `json:"eligible"`
}

type Group struct {
	Label   string   `json:"label"`
	Members []string `json:"members"`
}

// SessionService

type CreateSessionRequest struct {
	Name string `json:"name"`
}

type CreateSessionResponse struct {
	Session *Session `json:"session"`
	// Token authorizes every other call on this session.
	Token string `json:"token"`
}

type GetSessionRequest struct {
	SessionRef
}

type GetSessionResponse struct {
	Session *Session `json:"session"`
}

type DeleteSessionRequest struct {
	SessionRef
}

type DeleteSessionResponse struct{}

// ParticipantService

type AddParticipantsRequest struct {
	SessionRef
	// Text holds one name per line.
	Text string `json:"text"`
}

type AddParticipantsResponse struct {
	Added  int     `json:"added"`
	Roster *Roster `json:"roster"`
}

type LoadSampleRequest struct {
	SessionRef
}

type LoadSampleResponse struct {
	Added  int     `json:"added"`
	Roster *Roster `json:"roster"`
}

type RemoveParticipantRequest struct {
	SessionRef
	Index int `json:"index"`
}

type RemoveParticipantResponse struct {
	Roster *Roster `json:"roster"`
}

type ClearParticipantsRequest struct {
	SessionRef
	Confirm bool `json:"confirm"`
}

type ClearParticipantsResponse struct {
	Roster *Roster `json:"roster"`
}

type RemoveDuplicatesRequest struct {
	SessionRef
}

type RemoveDuplicatesResponse struct {
	Removed int     `json:"removed"`
	Roster  *Roster `json:"roster"`
}

type ListParticipantsRequest struct {
	SessionRef
}

type ListParticipantsResponse struct {
	Roster *Roster `json:"roster"`
}

// DrawService

type StartDrawRequest struct {
	SessionRef
}

type StartDrawResponse struct {
	State *DrawState `json:"state"`
}

type GetDrawStateRequest struct {
	SessionRef
}

type GetDrawStateResponse struct {
	State *DrawState `json:"state"`
}

type SetAllowRepeatRequest struct {
	SessionRef
	AllowRepeat bool `json:"allow_repeat"`
}

type SetAllowRepeatResponse struct {
	State *DrawState `json:"state"`
}

type ResetDrawRequest struct {
	SessionRef
	Confirm bool `json:"confirm"`
}

type ResetDrawResponse struct {
	State *DrawState `json:"state"`
}

// GroupService

type GenerateGroupsRequest struct {
	SessionRef
	GroupSize int `json:"group_size"`
}

type GenerateGroupsResponse struct {
	Groups    []*Group `json:"groups"`
	GroupSize int      `json:"group_size"`
}

type GetGroupsRequest struct {
	SessionRef
}

type GetGroupsResponse struct {
	Groups     []*Group `json:"groups"`
	GroupSize  int      `json:"group_size"`
	Generating bool     `json:"generating"`
}
