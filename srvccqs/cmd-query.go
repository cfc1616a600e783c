package decorator

import "context"

// Commands change state and may return what they created.
// P - params, R - result
type CmdResultHandler[P any, R any] interface {
	Handle(ctx context.Context, p P) (R, error)
}

// Q - query, R - result
type QueryHandler[Q any, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}
