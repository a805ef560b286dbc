package eventapi

import (
	"testing"
)

func TestCodecFlattensSessionRef(t *testing.T) {
	var codec Codec
	if codec.Name() != "json" {
		t.Fatalf("Expected codec to replace the json codec, got %q", codec.Name())
	}

	data, err := codec.Marshal(&RemoveParticipantRequest{SessionRef: SessionRef{SessionID: "s1"}, Index: 2})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(data), `{"session_id":"s1","index":2}`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var req RemoveParticipantRequest
	if err := codec.Unmarshal([]byte(`{"session_id":"s2","index":1}`), &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	var scoped SessionScoped = &req
	if scoped.SessionScope() != "s2" || req.Index != 1 {
		t.Errorf("Unexpected request: %+v", req)
	}
}

func TestCodecEmptyBody(t *testing.T) {
	var req GetGroupsRequest
	if err := (Codec{}).Unmarshal(nil, &req); err != nil {
		t.Fatalf("Expected empty body to decode, got %v", err)
	}
	if err := (Codec{}).Unmarshal([]byte("{"), &req); err == nil {
		t.Error("Expected malformed JSON to fail")
	}
}
