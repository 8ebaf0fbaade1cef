package join

import (
	"context"
	stderrors "errors"
	"io"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gojoin/collate"
	"github.com/kbukum/gojoin/logger"
	"github.com/kbukum/gojoin/observability"
	"github.com/kbukum/gojoin/pipeline"
)

// Stats summarizes a run.
type Stats struct {
	// LinesRead counts input lines per side, indexed by side minus one.
	LinesRead [2]int64
	// Paired counts joined rows.
	Paired int64
	// Unpaired counts unpaired rows per side, indexed by side minus one.
	Unpaired [2]int64
	// Groups counts keys present on both sides.
	Groups int64
}

func (s Stats) record() observability.RunRecord {
	return observability.RunRecord{
		LinesRead: s.LinesRead,
		Paired:    s.Paired,
		Unpaired:  s.Unpaired,
		Groups:    s.Groups,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics records run totals on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithNames sets the names used for each side in diagnostics.
func WithNames(name1, name2 string) Option {
	return func(e *Engine) {
		e.names = [2]string{name1, name2}
	}
}

// Engine merges two sorted sources. An Engine runs once.
type Engine struct {
	settings Settings
	src      [2]pipeline.Iterator[string]
	out      *Writer
	log      *logger.Logger
	metrics  *observability.Metrics
	names    [2]string
}

// NewEngine returns an engine joining src1 and src2 into w.
func NewEngine(settings Settings, src1, src2 pipeline.Iterator[string], w io.Writer, opts ...Option) *Engine {
	e := &Engine{
		settings: settings,
		src:      [2]pipeline.Iterator[string]{src1, src2},
		out:      NewWriter(w, settings.Separator.Output()),
		log:      logger.Get("join"),
		names:    [2]string{"file 1", "file 2"},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs the join. Rows written before a failure are flushed to the
// output. Both sources are closed when Run returns.
func (e *Engine) Run(ctx context.Context) (stats Stats, err error) {
	if err := e.settings.Validate(); err != nil {
		_ = e.src[0].Close()
		_ = e.src[1].Close()
		return stats, err
	}
	log := e.log.WithContext(ctx).WithFields(logger.Fields("file1", e.names[0], "file2", e.names[1]))
	rc := observability.NewRunContext("gojoin", e.metrics)
	ctx, span := rc.StartSpan(ctx, observability.SpanJoinRun,
		attribute.String(observability.AttrSeparator, e.settings.Separator.String()),
		attribute.Bool(observability.AttrIgnoreCase, e.settings.IgnoreCase),
		attribute.String(observability.AttrUnpaired, e.settings.Unpaired.String()),
	)

	cmp := collate.New(e.settings.IgnoreCase)
	c1 := NewCursor(e.names[0], Side1, e.src[0], e.settings, cmp)
	c2 := NewCursor(e.names[1], Side2, e.src[1], e.settings, cmp)

	defer func() {
		closeErr := stderrors.Join(c1.Close(), c2.Close())
		if err == nil {
			err = closeErr
		}
		stats.LinesRead = [2]int64{c1.LinesRead(), c2.LinesRead()}
		stats.Unpaired = [2]int64{c1.UnpairedWritten(), c2.UnpairedWritten()}
		stats.Paired = e.out.Rows() - stats.Unpaired[0] - stats.Unpaired[1]
		rc.End(ctx, span, stats.record(), err)

		fields := logger.Fields(
			"lines_read_1", stats.LinesRead[0], "lines_read_2", stats.LinesRead[1],
			"paired", stats.Paired, "groups", stats.Groups,
		)
		elapsed := logger.DurationFields("join", rc.Duration())
		if err != nil {
			log.Debug("join failed", logger.MergeWithError(fields, err), elapsed)
			return
		}
		log.Debug("join finished", fields, elapsed)
	}()

	log.Debug("join started", logger.Fields(
		"key1", e.settings.Key1+1, "key2", e.settings.Key2+1,
		"separator", e.settings.Separator.String(),
		"ignore_case", e.settings.IgnoreCase,
		"unpaired", e.settings.Unpaired.String(),
		"check_order", e.settings.CheckOrder,
	))

	err = e.merge(ctx, c1, c2, &stats)
	if flushErr := e.out.Flush(); err == nil {
		err = flushErr
	}
	return stats, err
}

func (e *Engine) merge(ctx context.Context, c1, c2 *Cursor, stats *Stats) error {
	if err := c1.Initialize(ctx); err != nil {
		return err
	}
	if err := c2.Initialize(ctx); err != nil {
		return err
	}

	for c1.HasLine() && c2.HasLine() {
		switch diff := c1.cmp.Compare(c1.Key(), c2.Key()); {
		case diff < 0:
			if err := c1.SkipLine(ctx, e.out); err != nil {
				return err
			}
		case diff > 0:
			if err := c2.SkipLine(ctx, e.out); err != nil {
				return err
			}
		default:
			next1, ok1, err := c1.Extend(ctx)
			if err != nil {
				return err
			}
			next2, ok2, err := c2.Extend(ctx)
			if err != nil {
				return err
			}
			if err := c1.Combine(c2, e.out); err != nil {
				return err
			}
			stats.Groups++
			c1.Reset(next1, ok1)
			c2.Reset(next2, ok2)
		}
	}

	if err := c1.Finalize(ctx, e.out); err != nil {
		return err
	}
	return c2.Finalize(ctx, e.out)
}
