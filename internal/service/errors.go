package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/draw"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/grouping"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/roster"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/storage"
)

// toConnectError wraps err with the Connect code that describes it.
func toConnectError(err error) error {
	return connect.NewError(errorCode(err), err)
}

func errorCode(err error) connect.Code {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, draw.ErrEmptyPool),
		errors.Is(err, draw.ErrDrawInProgress),
		errors.Is(err, grouping.ErrEmptyParticipants),
		errors.Is(err, grouping.ErrGenerationInProgress),
		errors.Is(err, event.ErrConfirmationRequired):
		return connect.CodeFailedPrecondition
	case errors.Is(err, grouping.ErrInvalidGroupSize),
		errors.Is(err, roster.ErrIndexOutOfRange),
		errors.Is(err, roster.ErrMalformedCSV):
		return connect.CodeInvalidArgument
	case errors.Is(err, event.ErrManagerClosed),
		errors.Is(err, draw.ErrEngineClosed),
		errors.Is(err, grouping.ErrGeneratorClosed):
		return connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}
