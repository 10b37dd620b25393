package reassign_instructor

import "context"

type ProductsService interface {
	ReassignAndDeleteInstructor(ctx context.Context, instructorID, replacementID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
