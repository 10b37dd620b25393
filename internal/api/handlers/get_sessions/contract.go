package get_sessions

import (
	"context"

	generateSessions "github.com/ceramicalma/ALMA-BookingService/internal/usecase/generate_sessions"
)

type GenerateSessionsUseCase interface {
	Execute(ctx context.Context, req *generateSessions.Request) (*generateSessions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
