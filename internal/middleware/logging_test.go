package middleware

import (
	"errors"
	"testing"

	"connectrpc.com/connect"
)

func TestServerFault(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{connect.NewError(connect.CodeInternal, errors.New("boom")), true},
		{connect.NewError(connect.CodeUnavailable, errors.New("closing")), true},
		{errors.New("plain error"), true},
		{connect.NewError(connect.CodeNotFound, errors.New("missing")), false},
		{connect.NewError(connect.CodeFailedPrecondition, errors.New("busy")), false},
		{connect.NewError(connect.CodeUnauthenticated, errors.New("no token")), false},
	}

	for _, tt := range tests {
		if got := serverFault(tt.err); got != tt.want {
			t.Errorf("serverFault(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := connect.NewError(connect.CodeNotFound, errors.New("session not found"))
	if got := errorMessage(err); got != "session not found" {
		t.Errorf("Expected bare message, got %q", got)
	}
	if got := errorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("Expected plain, got %q", got)
	}
}
