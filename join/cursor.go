package join

import (
	"context"

	"github.com/kbukum/gojoin/collate"
	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/field"
	"github.com/kbukum/gojoin/pipeline"
)

// Cursor walks one side of a join. It holds the current run-group: either
// nothing (the side is exhausted) or one or more consecutive lines with the
// same key.
type Cursor struct {
	name          string
	side          Side
	key           int
	printUnpaired bool
	checkOrder    bool
	cmp           *collate.Comparator
	lines         pipeline.Iterator[field.Line]
	group         []field.Line

	read     int64
	unpaired int64
	prevKey  string
}

// NewCursor returns a cursor over src for side. name identifies the side in
// diagnostics.
func NewCursor(name string, side Side, src pipeline.Iterator[string], settings Settings, cmp *collate.Comparator) *Cursor {
	c := &Cursor{
		name:          name,
		side:          side,
		key:           settings.Key(side),
		printUnpaired: settings.Unpaired == side && side != SideNone,
		checkOrder:    settings.CheckOrder,
		cmp:           cmp,
	}
	sep := settings.Separator
	parsed := pipeline.Map(pipeline.From(src), func(_ context.Context, raw string) (field.Line, error) {
		return field.Split(raw, sep), nil
	})
	c.lines = pipeline.Tap(parsed, c.observe).Iter()
	return c
}

// observe counts each line read and, when order checking is on, rejects a
// key that sorts before its predecessor.
func (c *Cursor) observe(_ context.Context, line field.Line) error {
	c.read++
	if !c.checkOrder {
		return nil
	}
	key := line.Field(c.key)
	if c.read > 1 && c.cmp.Compare(c.prevKey, key) > 0 {
		return errors.UnsortedInput(c.name, int(c.read), c.prevKey, key)
	}
	c.prevKey = key
	return nil
}

// Initialize reads the first line, if any, as the current group.
func (c *Cursor) Initialize(ctx context.Context) error {
	line, ok, err := c.ReadLine(ctx)
	if err != nil {
		return err
	}
	c.Reset(line, ok)
	return nil
}

// HasLine reports whether the cursor holds a current line.
func (c *Cursor) HasLine() bool {
	return len(c.group) > 0
}

// Key returns the join field of the current line. It must only be called
// when HasLine is true.
func (c *Cursor) Key() string {
	return c.group[0].Field(c.key)
}

// ReadLine reads and parses the next line. ok is false exactly at the end of
// the source. A canceled ctx stops the read with an INTERRUPTED error.
func (c *Cursor) ReadLine(ctx context.Context) (field.Line, bool, error) {
	if err := ctx.Err(); err != nil {
		return field.Line{}, false, errors.Interrupted(err)
	}
	line, ok, err := c.lines.Next(ctx)
	if err != nil {
		appErr, isApp := errors.AsAppError(err)
		if !isApp {
			appErr = errors.IOFault(c.name, err)
		}
		return field.Line{}, false, appErr.WithDetail("side", c.side.String())
	}
	return line, ok, nil
}

// SkipLine discards the current line, whose key has no match on the other
// side, writing it first when this side prints unpaired lines. The next line
// becomes the current group.
func (c *Cursor) SkipLine(ctx context.Context, w *Writer) error {
	if c.printUnpaired {
		if err := c.writeUnpaired(w, c.group[0]); err != nil {
			return err
		}
	}
	line, ok, err := c.ReadLine(ctx)
	if err != nil {
		return err
	}
	c.Reset(line, ok)
	return nil
}

// Extend appends following lines while their key equals the current key.
// It returns the first line with a different key, or ok=false when the
// source ran out first.
func (c *Cursor) Extend(ctx context.Context) (field.Line, bool, error) {
	key := c.Key()
	for {
		line, ok, err := c.ReadLine(ctx)
		if err != nil || !ok {
			return field.Line{}, false, err
		}
		if !c.cmp.Equal(key, line.Field(c.key)) {
			return line, true, nil
		}
		c.group = append(c.group, line)
	}
}

// Combine writes the cartesian product of this group and other's: this side
// outer, other inner, both in input order. The key is taken from this side.
func (c *Cursor) Combine(other *Cursor, w *Writer) error {
	key := c.Key()
	for _, l1 := range c.group {
		for _, l2 := range other.group {
			if err := w.WritePair(key, l1, c.key, l2, other.key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reset clears the group and, if ok, starts a new one with next.
func (c *Cursor) Reset(next field.Line, ok bool) {
	clear(c.group)
	c.group = c.group[:0]
	if ok {
		c.group = append(c.group, next)
	}
}

// Finalize writes the current line and every remaining line as unpaired when
// this side prints unpaired lines. It is called once the other side is
// exhausted.
func (c *Cursor) Finalize(ctx context.Context, w *Writer) error {
	if !c.HasLine() || !c.printUnpaired {
		return nil
	}
	if err := c.writeUnpaired(w, c.group[0]); err != nil {
		return err
	}
	for {
		line, ok, err := c.ReadLine(ctx)
		if err != nil || !ok {
			return err
		}
		if err := c.writeUnpaired(w, line); err != nil {
			return err
		}
	}
}

// Close releases the underlying source.
func (c *Cursor) Close() error {
	return c.lines.Close()
}

// LinesRead returns the number of lines read so far.
func (c *Cursor) LinesRead() int64 {
	return c.read
}

// UnpairedWritten returns the number of unpaired rows written for this side.
func (c *Cursor) UnpairedWritten() int64 {
	return c.unpaired
}

func (c *Cursor) writeUnpaired(w *Writer, line field.Line) error {
	if err := w.WriteUnpaired(line, c.key); err != nil {
		return err
	}
	c.unpaired++
	return nil
}
