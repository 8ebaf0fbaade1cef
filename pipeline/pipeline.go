package pipeline

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline is a lazy chain of stages over one source Iterator. Nothing is
// pulled from the source until the Iterator returned by Iter is.
type Pipeline[T any] struct {
	open func() Iterator[T]
}

// From starts a pipeline at src. Closing the pipeline's Iterator closes src.
func From[T any](src Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{open: func() Iterator[T] { return src }}
}

// Iter assembles the stages and returns the Iterator at the end of the
// chain. The caller must Close it.
func (p *Pipeline[T]) Iter() Iterator[T] {
	return p.open()
}
