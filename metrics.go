package arffconv

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/arffconv/vector"
)

// MetricsCollector defines an interface for collecting conversion metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    bytesWritten prometheus.Counter
//	    failures     *prometheus.CounterVec
//	}
//
//	func (p *PrometheusCollector) RecordWrite(bytes int, duration time.Duration, err error) {
//	    p.bytesWritten.Add(float64(bytes))
//	}
type MetricsCollector interface {
	// RecordArchive is called after each archive open.
	RecordArchive(duration time.Duration, err error)

	// RecordVocabulary is called after each vocabulary build.
	// size is the number of distinct tokens.
	RecordVocabulary(size int, duration time.Duration)

	// RecordVectorize is called after each label of an archive is vectorized.
	// docs is the number of documents produced.
	RecordVectorize(label vector.Label, docs int, duration time.Duration)

	// RecordWrite is called after each output write.
	// bytes is the stored size, after compression.
	RecordWrite(bytes int, duration time.Duration, err error)

	// RecordFailure is called for every failure collected in a Report.
	RecordFailure(stage Stage)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordArchive(time.Duration, error)               {}
func (NoopMetricsCollector) RecordVocabulary(int, time.Duration)              {}
func (NoopMetricsCollector) RecordVectorize(vector.Label, int, time.Duration) {}
func (NoopMetricsCollector) RecordWrite(int, time.Duration, error)            {}
func (NoopMetricsCollector) RecordFailure(Stage)                              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ArchiveCount     atomic.Int64
	ArchiveErrors    atomic.Int64
	VocabularyCount  atomic.Int64
	VocabularyTokens atomic.Int64
	HamDocuments     atomic.Int64
	SpamDocuments    atomic.Int64
	VectorizeNanos   atomic.Int64
	WriteCount       atomic.Int64
	WriteErrors      atomic.Int64
	BytesWritten     atomic.Int64
	WriteTotalNanos  atomic.Int64
	Failures         atomic.Int64
}

// RecordArchive implements MetricsCollector.
func (b *BasicMetricsCollector) RecordArchive(_ time.Duration, err error) {
	b.ArchiveCount.Add(1)
	if err != nil {
		b.ArchiveErrors.Add(1)
	}
}

// RecordVocabulary implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVocabulary(size int, _ time.Duration) {
	b.VocabularyCount.Add(1)
	b.VocabularyTokens.Add(int64(size))
}

// RecordVectorize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVectorize(label vector.Label, docs int, duration time.Duration) {
	switch label {
	case vector.Ham:
		b.HamDocuments.Add(int64(docs))
	case vector.Spam:
		b.SpamDocuments.Add(int64(docs))
	}
	b.VectorizeNanos.Add(duration.Nanoseconds())
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(bytes int, duration time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.BytesWritten.Add(int64(bytes))
}

// RecordFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFailure(Stage) {
	b.Failures.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ArchiveCount:     b.ArchiveCount.Load(),
		ArchiveErrors:    b.ArchiveErrors.Load(),
		VocabularyCount:  b.VocabularyCount.Load(),
		VocabularyTokens: b.VocabularyTokens.Load(),
		HamDocuments:     b.HamDocuments.Load(),
		SpamDocuments:    b.SpamDocuments.Load(),
		WriteCount:       b.WriteCount.Load(),
		WriteErrors:      b.WriteErrors.Load(),
		BytesWritten:     b.BytesWritten.Load(),
		WriteAvgNanos:    b.getAvgWriteNanos(),
		Failures:         b.Failures.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgWriteNanos() int64 {
	count := b.WriteCount.Load()
	if count == 0 {
		return 0
	}
	return b.WriteTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ArchiveCount     int64
	ArchiveErrors    int64
	VocabularyCount  int64
	VocabularyTokens int64
	HamDocuments     int64
	SpamDocuments    int64
	WriteCount       int64
	WriteErrors      int64
	BytesWritten     int64
	WriteAvgNanos    int64
	Failures         int64
}
