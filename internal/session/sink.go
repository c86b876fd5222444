package session

import (
	"context"
	"errors"

	"github.com/verte-zerg/thok/internal/model"
)

// Sink persists completed session results.
type Sink interface {
	Append(ctx context.Context, result model.Result) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, result model.Result) error

// Append implements Sink.
func (f SinkFunc) Append(ctx context.Context, result model.Result) error {
	return f(ctx, result)
}

// MultiSink appends to every sink once, in order, and joins their errors.
type MultiSink []Sink

// Append implements Sink.
func (m MultiSink) Append(ctx context.Context, result model.Result) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Append(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
