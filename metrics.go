package rowmap

import (
	"sync/atomic"
)

// MetricsCollector receives backing decisions made by RowMap operations.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use: distinct RowMaps may be
// operated on from different goroutines.
type MetricsCollector interface {
	// RecordConversion is called when a RowMap moves to a more general
	// backing. size is the number of positions converted.
	RecordConversion(from, to Kind, size uint32)

	// RecordSelect is called after each SelectRows with the backings of
	// both operands and of the result.
	RecordSelect(base, picker, result Kind)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordConversion(Kind, Kind, uint32) {}
func (NoopMetricsCollector) RecordSelect(Kind, Kind, Kind)       {}

// BasicMetricsCollector provides simple in-memory counters.
type BasicMetricsCollector struct {
	// Conversions counts conversions indexed by [from][to].
	Conversions [numKinds][numKinds]atomic.Int64
	// ConvertedPositions sums the sizes of all conversions.
	ConvertedPositions atomic.Int64
	// Selects counts SelectRows calls indexed by result kind.
	Selects [numKinds]atomic.Int64
	// PointwiseSelects counts SelectRows calls that fell back to
	// evaluating every picker position.
	PointwiseSelects atomic.Int64
}

// RecordConversion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConversion(from, to Kind, size uint32) {
	b.Conversions[from][to].Add(1)
	b.ConvertedPositions.Add(int64(size))
}

// RecordSelect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelect(base, picker, result Kind) {
	b.Selects[result].Add(1)
	if usesPointwise(base, picker) {
		b.PointwiseSelects.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	var s BasicMetricsStats
	for from := range numKinds {
		for to := range numKinds {
			s.Conversions += b.Conversions[from][to].Load()
		}
	}
	s.RangeToIndexList = b.Conversions[KindRange][KindIndexList].Load()
	s.RangeToBitmap = b.Conversions[KindRange][KindBitmap].Load()
	s.ConvertedPositions = b.ConvertedPositions.Load()
	for k := range numKinds {
		s.Selects += b.Selects[k].Load()
	}
	s.PointwiseSelects = b.PointwiseSelects.Load()
	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Conversions        int64
	RangeToIndexList   int64
	RangeToBitmap      int64
	ConvertedPositions int64
	Selects            int64
	PointwiseSelects   int64
}
