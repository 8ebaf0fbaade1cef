package pipeline

import "context"

// Map converts each value with fn.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return then(p, fn)
}

// Tap hands each value to fn and passes it on unchanged. An error from fn
// ends the stream.
func Tap[T any](p *Pipeline[T], fn func(context.Context, T) error) *Pipeline[T] {
	return then(p, func(ctx context.Context, v T) (T, error) {
		return v, fn(ctx, v)
	})
}

func then[I, O any](p *Pipeline[I], step func(context.Context, I) (O, error)) *Pipeline[O] {
	return &Pipeline[O]{
		open: func() Iterator[O] {
			return &stage[I, O]{source: p.open(), step: step}
		},
	}
}

// stage applies step to every value of source. Once the source is exhausted
// or a pull fails, the outcome is sticky: later calls to Next return it
// again without touching the source.
type stage[I, O any] struct {
	source Iterator[I]
	step   func(context.Context, I) (O, error)
	done   bool
	err    error
}

func (s *stage[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	if s.done {
		return zero, false, s.err
	}
	in, ok, err := s.source.Next(ctx)
	if err == nil && ok {
		var out O
		if out, err = s.step(ctx, in); err == nil {
			return out, true, nil
		}
	}
	s.done, s.err = true, err
	return zero, false, err
}

func (s *stage[I, O]) Close() error { return s.source.Close() }
