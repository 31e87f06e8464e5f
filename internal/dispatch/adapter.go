package dispatch

import (
	"context"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
)

// Backend is the single capability the dispatcher consumes.
type Backend interface {
	Run(ctx context.Context, req *model.TaskRequest) (any, error)
}

// The shapes a concrete client may expose, in priority order.
type (
	TaskRunner interface {
		RunTask(ctx context.Context, req *model.TaskRequest) (any, error)
	}
	TaskExecutor interface {
		Execute(ctx context.Context, req *model.TaskRequest) (any, error)
	}
	TaskCaller interface {
		Call(ctx context.Context, req *model.TaskRequest) (any, error)
	}
)

const (
	MethodRunTask = "runTask"
	MethodExecute = "execute"
	MethodCall    = "call"
	MethodNative  = "run"
)

// Adapter binds one method of a concrete client.
type Adapter struct {
	method string
	fn     func(ctx context.Context, req *model.TaskRequest) (any, error)
}

func (a *Adapter) Run(ctx context.Context, req *model.TaskRequest) (any, error) {
	return a.fn(ctx, req)
}

// Method reports which client method the adapter invokes.
func (a *Adapter) Method() string {
	return a.method
}

// Adapt picks the entry point of client: RunTask, then Execute, then Call.
// A client already implementing Backend is used as is.
func Adapt(client any) (*Adapter, error) {
	switch c := client.(type) {
	case TaskRunner:
		return &Adapter{method: MethodRunTask, fn: c.RunTask}, nil
	case TaskExecutor:
		return &Adapter{method: MethodExecute, fn: c.Execute}, nil
	case TaskCaller:
		return &Adapter{method: MethodCall, fn: c.Call}, nil
	case Backend:
		return &Adapter{method: MethodNative, fn: c.Run}, nil
	default:
		return nil, ErrUnsupportedClient
	}
}
