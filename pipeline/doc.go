// Package pipeline provides pull-based, lazy sequences.
//
// An Iterator yields values one at a time until it is exhausted; nothing is
// read ahead. Input files become an Iterator[string] of raw lines, which the
// join engine maps into parsed lines and pulls on demand, so at most the
// current run of equal keys is ever held in memory.
//
// Stages end for good: after a source runs dry or a stage fails, Next keeps
// reporting that outcome without pulling the source again.
//
// # Operators
//
//   - Map: transform each value
//   - Tap: side-effect without altering the value (counting, order checks)
//
// # Usage
//
//	parsed := pipeline.Map(pipeline.From(src), func(_ context.Context, raw string) (field.Line, error) {
//	    return field.Split(raw, sep), nil
//	})
//	it := parsed.Iter()
//	defer it.Close()
package pipeline
