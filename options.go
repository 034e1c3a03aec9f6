package arffconv

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/arffconv/arff"
	"github.com/hupe1980/arffconv/codec"
	"github.com/hupe1980/arffconv/resource"
)

// ErrorPolicy decides what a failing stage does to the rest of the run.
type ErrorPolicy int

const (
	// ContinueOnError logs each failure, records it in the Report and moves
	// on with whatever data was collected. One bad input never aborts the
	// batch.
	ContinueOnError ErrorPolicy = iota
	// FailFast aborts the run at the first failing stage.
	FailFast
)

func (p ErrorPolicy) String() string {
	switch p {
	case ContinueOnError:
		return "continue"
	case FailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy returns the ErrorPolicy named s.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "continue":
		return ContinueOnError, nil
	case "fail-fast", "failfast":
		return FailFast, nil
	default:
		return ContinueOnError, fmt.Errorf("unknown error policy %q", s)
	}
}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	policy           ErrorPolicy
	parallelism      int
	compression      arff.Compression
	sidecar          bool
	comment          *string
	resource         *resource.Controller
	codec            codec.Codec
}

// Option configures a Converter.
type Option func(*options)

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := arffconv.NewJSONLogger(slog.LevelInfo)
//	conv, _ := arffconv.New(in, out, arffconv.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &arffconv.BasicMetricsCollector{}
//	conv, _ := arffconv.New(in, out, arffconv.WithMetricsCollector(metrics))
//	// ... conv.Run(ctx) ...
//	stats := metrics.GetStats()
//	fmt.Printf("Written: %d bytes, failures: %d\n", stats.BytesWritten, stats.Failures)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithErrorPolicy sets the failure policy. Default: ContinueOnError.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithParallelism sets how many families Run converts at once.
// Families never share state, so their outputs are identical at any
// setting. Values below 1 mean 1, the default.
//
// With a resource controller the effective value is also bounded by its
// worker slots.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = max(n, 1)
	}
}

// WithCompression stores ARFF outputs compressed, as
// "<relation>.arff.zst" or "<relation>.arff.lz4". Default: arff.None.
func WithCompression(c arff.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithVocabularySidecar additionally writes "<family>_vocab.json" listing
// the token behind every w<i> attribute.
func WithVocabularySidecar(enabled bool) Option {
	return func(o *options) {
		o.sidecar = enabled
	}
}

// WithComment replaces the comment block at the top of every ARFF output.
func WithComment(comment string) Option {
	return func(o *options) {
		o.comment = &comment
	}
}

// WithResourceController bounds memory held by in-flight ARFF documents,
// archive read throughput, and family parallelism.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resource = rc
	}
}

// WithCodec configures the codec used for the vocabulary sidecar.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NewLogger(nil),
		metricsCollector: NoopMetricsCollector{},
		policy:           ContinueOnError,
		parallelism:      1,
		compression:      arff.None,
		codec:            codec.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *options) arffOptions() []arff.Option {
	if o.comment == nil {
		return nil
	}
	return []arff.Option{arff.WithComment(*o.comment)}
}
