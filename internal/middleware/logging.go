package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// quietProcedures are polled many times a second during a draw and only
// logged at debug level when they succeed.
var quietProcedures = map[string]bool{
	eventapi.DrawServiceGetDrawStateProcedure: true,
	eventapi.GroupServiceGetGroupsProcedure:   true,
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, target session and duration. Caller mistakes are logged as
// warnings and server faults as errors.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			procedure := req.Spec().Procedure
			attrs := []any{
				"procedure", procedure,
				"session_id", sessionScope(req), // empty for CreateSession
				"duration_ms", time.Since(start).Milliseconds(),
			}

			switch {
			case err == nil && quietProcedures[procedure]:
				slog.Debug("RPC ok", attrs...)
			case err == nil:
				slog.Info("RPC ok", attrs...)
			case serverFault(err):
				slog.Error("RPC failed", append(attrs, "code", connect.CodeOf(err), "error", err)...)
			default:
				slog.Warn("RPC rejected", append(attrs, "code", connect.CodeOf(err), "error", errorMessage(err))...)
			}

			return resp, err
		}
	}
}

func serverFault(err error) bool {
	switch connect.CodeOf(err) {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeUnavailable, connect.CodeDataLoss:
		return true
	default:
		return false
	}
}

func errorMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	return err.Error()
}
