package stats

import (
	"testing"

	"github.com/Scar2201/RPCG/internal/model"
)

func TestSelectWeakBands(t *testing.T) {
	aggs := []model.BandAggregate{
		{Band: 1, Attempts: 5, AvgDeviation: 1.0},
		{Band: 4, Attempts: 3, AvgDeviation: 3.5},
		{Band: 7, Attempts: 2, AvgDeviation: 2.0},
		{Band: 9, Attempts: 0, AvgDeviation: 9.0},
	}
	weak := SelectWeakBands(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak bands, got %d", len(weak))
	}
	if _, ok := weak[4]; !ok {
		t.Fatalf("expected band 4 in weak set, got %v", weak)
	}
	if _, ok := weak[7]; !ok {
		t.Fatalf("expected band 7 in weak set, got %v", weak)
	}
	if _, ok := weak[9]; ok {
		t.Fatalf("band with zero attempts should be excluded, got %v", weak)
	}
}

func TestSelectWeakBandsTopClamp(t *testing.T) {
	aggs := []model.BandAggregate{
		{Band: 2, Attempts: 1, AvgDeviation: 1.0},
	}
	weak := SelectWeakBands(aggs, 5)
	if len(weak) != 1 {
		t.Fatalf("expected 1 weak band, got %d", len(weak))
	}
	if weak = SelectWeakBands(nil, 3); len(weak) != 0 {
		t.Fatalf("expected empty set for no aggregates, got %v", weak)
	}
}

func TestSelectWeakBandsTieBreak(t *testing.T) {
	aggs := []model.BandAggregate{
		{Band: 6, Attempts: 1, AvgDeviation: 2.0},
		{Band: 3, Attempts: 1, AvgDeviation: 2.0},
	}
	weak := SelectWeakBands(aggs, 1)
	if _, ok := weak[3]; !ok {
		t.Fatalf("tie should prefer lower band, got %v", weak)
	}
}
