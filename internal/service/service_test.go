package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/auth"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/draw"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/grouping"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/roster"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/storage"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/storage/sqlite"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

type testServer struct {
	url string
}

// setupTestServer serves every Connect service over a fresh in-memory store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	manager := event.NewManager(store, nil, event.Config{
		DrawTicks:    2,
		DrawInterval: time.Millisecond,
		GroupDelay:   time.Millisecond,
	})
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	mux := http.NewServeMux()
	for _, route := range Routes(manager, jwtManager) {
		mux.Handle(route.Path, route.Handler)
	}
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		manager.Close()
		store.Close()
	})
	return &testServer{url: server.URL}
}

func (s *testServer) client(token string) *eventapi.Client {
	if token == "" {
		return eventapi.NewClient(http.DefaultClient, s.url)
	}
	return eventapi.NewClient(http.DefaultClient, s.url, connect.WithInterceptors(eventapi.BearerToken(token)))
}

// createSession returns the new session's ID and a client holding its token.
func (s *testServer) createSession(t *testing.T) (string, *eventapi.Client) {
	t.Helper()
	resp, err := s.client("").CreateSession(context.Background(), connect.NewRequest(&eventapi.CreateSessionRequest{
		Name: "Year-end party",
	}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return resp.Msg.Session.ID, s.client(resp.Msg.Token)
}

func ref(id string) eventapi.SessionRef {
	return eventapi.SessionRef{SessionID: id}
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got success", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected %v, got %v (%v)", want, got, err)
	}
}

func TestCreateSession(t *testing.T) {
	server := setupTestServer(t)

	resp, err := server.client("").CreateSession(context.Background(), connect.NewRequest(&eventapi.CreateSessionRequest{
		Name: "Year-end party",
	}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if resp.Msg.Session == nil || resp.Msg.Session.ID == "" {
		t.Fatal("expected session with ID in response")
	}
	if resp.Msg.Session.Name != "Year-end party" {
		t.Errorf("name: expected 'Year-end party', got '%s'", resp.Msg.Session.Name)
	}
	if resp.Msg.Session.GroupSize != grouping.DefaultGroupSize {
		t.Errorf("group_size: expected %d, got %d", grouping.DefaultGroupSize, resp.Msg.Session.GroupSize)
	}
	if resp.Msg.Token == "" {
		t.Error("expected a session token")
	}
}

func TestSessionTokenRequired(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	id, client := server.createSession(t)
	otherID, _ := server.createSession(t)

	if _, err := client.GetSession(ctx, connect.NewRequest(&eventapi.GetSessionRequest{SessionRef: ref(id)})); err != nil {
		t.Fatalf("GetSession with token failed: %v", err)
	}

	_, err := server.client("").GetSession(ctx, connect.NewRequest(&eventapi.GetSessionRequest{SessionRef: ref(id)}))
	expectCode(t, err, connect.CodeUnauthenticated)

	_, err = client.GetSession(ctx, connect.NewRequest(&eventapi.GetSessionRequest{SessionRef: ref(otherID)}))
	expectCode(t, err, connect.CodePermissionDenied)
}

func TestDeleteSession(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	id, client := server.createSession(t)

	if _, err := client.DeleteSession(ctx, connect.NewRequest(&eventapi.DeleteSessionRequest{SessionRef: ref(id)})); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	_, err := client.GetSession(ctx, connect.NewRequest(&eventapi.GetSessionRequest{SessionRef: ref(id)}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestParticipants(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	id, client := server.createSession(t)

	addResp, err := client.AddParticipants(ctx, connect.NewRequest(&eventapi.AddParticipantsRequest{
		SessionRef: ref(id),
		Text:       "Alice\n  Bob  \n\nAlice",
	}))
	if err != nil {
		t.Fatalf("AddParticipants failed: %v", err)
	}
	if addResp.Msg.Added != 3 {
		t.Errorf("added: expected 3, got %d", addResp.Msg.Added)
	}
	if addResp.Msg.Roster.Redundant != 1 || len(addResp.Msg.Roster.Duplicates) != 1 {
		t.Errorf("expected Alice reported as duplicate, got %+v", addResp.Msg.Roster)
	}

	_, err = client.RemoveParticipant(ctx, connect.NewRequest(&eventapi.RemoveParticipantRequest{
		SessionRef: ref(id),
		Index:      3,
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	dedupResp, err := client.RemoveDuplicates(ctx, connect.NewRequest(&eventapi.RemoveDuplicatesRequest{SessionRef: ref(id)}))
	if err != nil {
		t.Fatalf("RemoveDuplicates failed: %v", err)
	}
	if dedupResp.Msg.Removed != 1 || len(dedupResp.Msg.Roster.Names) != 2 {
		t.Errorf("expected one duplicate removed, got %+v", dedupResp.Msg)
	}

	removeResp, err := client.RemoveParticipant(ctx, connect.NewRequest(&eventapi.RemoveParticipantRequest{
		SessionRef: ref(id),
		Index:      0,
	}))
	if err != nil {
		t.Fatalf("RemoveParticipant failed: %v", err)
	}
	if names := removeResp.Msg.Roster.Names; len(names) != 1 || names[0] != "Bob" {
		t.Errorf("expected [Bob], got %v", names)
	}

	_, err = client.ClearParticipants(ctx, connect.NewRequest(&eventapi.ClearParticipantsRequest{SessionRef: ref(id)}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	clearResp, err := client.ClearParticipants(ctx, connect.NewRequest(&eventapi.ClearParticipantsRequest{
		SessionRef: ref(id),
		Confirm:    true,
	}))
	if err != nil {
		t.Fatalf("ClearParticipants failed: %v", err)
	}
	if clearResp.Msg.Roster.Names == nil || len(clearResp.Msg.Roster.Names) != 0 {
		t.Errorf("expected an empty, non-null list, got %#v", clearResp.Msg.Roster.Names)
	}

	sampleResp, err := client.LoadSample(ctx, connect.NewRequest(&eventapi.LoadSampleRequest{SessionRef: ref(id)}))
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if sampleResp.Msg.Added != len(roster.SampleNames()) {
		t.Errorf("added: expected %d, got %d", len(roster.SampleNames()), sampleResp.Msg.Added)
	}

	listResp, err := client.ListParticipants(ctx, connect.NewRequest(&eventapi.ListParticipantsRequest{SessionRef: ref(id)}))
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(listResp.Msg.Roster.Names) != len(roster.SampleNames()) {
		t.Errorf("expected the sample list, got %v", listResp.Msg.Roster.Names)
	}
}

// waitForDraw polls until the running draw has committed.
func waitForDraw(t *testing.T, client *eventapi.Client, id string) *eventapi.DrawState {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.GetDrawState(context.Background(), connect.NewRequest(&eventapi.GetDrawStateRequest{SessionRef: ref(id)}))
		if err != nil {
			t.Fatalf("GetDrawState failed: %v", err)
		}
		if !resp.Msg.State.Drawing {
			return resp.Msg.State
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("draw did not finish")
	return nil
}

func TestDraw(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	id, client := server.createSession(t)

	_, err := client.StartDraw(ctx, connect.NewRequest(&eventapi.StartDrawRequest{SessionRef: ref(id)}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	if _, err := client.AddParticipants(ctx, connect.NewRequest(&eventapi.AddParticipantsRequest{
		SessionRef: ref(id),
		Text:       "Alice\nBob",
	})); err != nil {
		t.Fatalf("AddParticipants failed: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		if _, err := client.StartDraw(ctx, connect.NewRequest(&eventapi.StartDrawRequest{SessionRef: ref(id)})); err != nil {
			t.Fatalf("StartDraw %d failed: %v", i+1, err)
		}
		state := waitForDraw(t, client, id)
		if len(state.Winners) != i+1 {
			t.Fatalf("expected %d winners, got %v", i+1, state.Winners)
		}
		if state.Current != state.Winners[0] {
			t.Errorf("expected the latest winner on display, got %q vs %q", state.Current, state.Winners[0])
		}
		seen[state.Winners[0]] = true
	}
	if !seen["Alice"] || !seen["Bob"] {
		t.Errorf("expected both participants to win once, got %v", seen)
	}

	_, err = client.StartDraw(ctx, connect.NewRequest(&eventapi.StartDrawRequest{SessionRef: ref(id)}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	repeatResp, err := client.SetAllowRepeat(ctx, connect.NewRequest(&eventapi.SetAllowRepeatRequest{
		SessionRef:  ref(id),
		AllowRepeat: true,
	}))
	if err != nil {
		t.Fatalf("SetAllowRepeat failed: %v", err)
	}
	if !repeatResp.Msg.State.AllowRepeat || repeatResp.Msg.State.Eligible != 2 {
		t.Errorf("expected everyone eligible again, got %+v", repeatResp.Msg.State)
	}

	_, err = client.ResetDraw(ctx, connect.NewRequest(&eventapi.ResetDrawRequest{SessionRef: ref(id)}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	resetResp, err := client.ResetDraw(ctx, connect.NewRequest(&eventapi.ResetDrawRequest{
		SessionRef: ref(id),
		Confirm:    true,
	}))
	if err != nil {
		t.Fatalf("ResetDraw failed: %v", err)
	}
	if len(resetResp.Msg.State.Winners) != 0 || resetResp.Msg.State.Current != draw.Placeholder {
		t.Errorf("expected a cleared history, got %+v", resetResp.Msg.State)
	}
}

func TestGroups(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	id, client := server.createSession(t)

	_, err := client.GenerateGroups(ctx, connect.NewRequest(&eventapi.GenerateGroupsRequest{
		SessionRef: ref(id),
		GroupSize:  2,
	}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	if _, err := client.AddParticipants(ctx, connect.NewRequest(&eventapi.AddParticipantsRequest{
		SessionRef: ref(id),
		Text:       "A\nB\nC\nD\nE",
	})); err != nil {
		t.Fatalf("AddParticipants failed: %v", err)
	}

	_, err = client.GenerateGroups(ctx, connect.NewRequest(&eventapi.GenerateGroupsRequest{
		SessionRef: ref(id),
		GroupSize:  0,
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	genResp, err := client.GenerateGroups(ctx, connect.NewRequest(&eventapi.GenerateGroupsRequest{
		SessionRef: ref(id),
		GroupSize:  2,
	}))
	if err != nil {
		t.Fatalf("GenerateGroups failed: %v", err)
	}
	if len(genResp.Msg.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(genResp.Msg.Groups))
	}
	for i, g := range genResp.Msg.Groups {
		if want := fmt.Sprintf("第 %d 組", i+1); g.Label != want {
			t.Errorf("label: expected %q, got %q", want, g.Label)
		}
	}
	if len(genResp.Msg.Groups[2].Members) != 1 {
		t.Errorf("expected the last group to hold the remainder, got %v", genResp.Msg.Groups[2].Members)
	}

	getResp, err := client.GetGroups(ctx, connect.NewRequest(&eventapi.GetGroupsRequest{SessionRef: ref(id)}))
	if err != nil {
		t.Fatalf("GetGroups failed: %v", err)
	}
	if getResp.Msg.GroupSize != 2 || len(getResp.Msg.Groups) != 3 || getResp.Msg.Generating {
		t.Errorf("unexpected groups state: %+v", getResp.Msg)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{storage.ErrNotFound, connect.CodeNotFound},
		{fmt.Errorf("wrapped: %w", storage.ErrNotFound), connect.CodeNotFound},
		{draw.ErrEmptyPool, connect.CodeFailedPrecondition},
		{draw.ErrDrawInProgress, connect.CodeFailedPrecondition},
		{grouping.ErrEmptyParticipants, connect.CodeFailedPrecondition},
		{grouping.ErrGenerationInProgress, connect.CodeFailedPrecondition},
		{event.ErrConfirmationRequired, connect.CodeFailedPrecondition},
		{grouping.ErrInvalidGroupSize, connect.CodeInvalidArgument},
		{roster.ErrIndexOutOfRange, connect.CodeInvalidArgument},
		{roster.ErrMalformedCSV, connect.CodeInvalidArgument},
		{event.ErrManagerClosed, connect.CodeUnavailable},
		{context.Canceled, connect.CodeCanceled},
		{errors.New("disk on fire"), connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := errorCode(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
