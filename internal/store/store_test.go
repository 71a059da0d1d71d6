package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Scar2201/RPCG/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "rpcg.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func sampleSession(i int, mode string) (model.SessionRecord, []model.TargetRecord) {
	start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
	end := start.Add(30 * time.Second)
	rec := model.SessionRecord{
		UUID:      "test-uuid",
		StartedAt: start,
		EndedAt:   end,
		Config: model.Config{
			Targets:         2,
			Precision:       5,
			Hold:            1,
			TransitionDelay: 1,
			Mode:            mode,
			Input:           "keys",
			TargetMin:       10,
			TargetMax:       90,
		},
		Scores: model.Scores{
			ElapsedMs:     30000,
			GameTimeMs:    10000,
			AvgReactionMs: 500,
			MinReactionMs: 400,
			MaxReactionMs: 600,
			AvgPrecision:  1.5,
			Consistency:   90,
			Overall:       80,
		},
	}
	records := []model.TargetRecord{
		{TargetValue: 25, ReactionMs: 400, CompletionMs: 1400, Accuracy: 1.0},
		{TargetValue: 75, ReactionMs: 600, CompletionMs: 1600, Accuracy: 2.0},
	}
	return rec, records
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		mode := "release"
		if i == 2 {
			mode = "press"
		}
		rec, records := sampleSession(i, mode)
		id, err := st.InsertSession(ctx, rec, records)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	sessions, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != ids[0] || sessions[0].Overall != 80 {
		t.Fatalf("unexpected first session: %+v", sessions[0])
	}

	releaseOnly, err := st.ListSessions(ctx, model.StatsConfig{Mode: "release"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(releaseOnly) != 2 {
		t.Fatalf("expected 2 release sessions, got %d", len(releaseOnly))
	}

	since := time.Unix(0, 0).Add(90 * time.Second)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 sessions since %v, got %d", since, len(recent))
	}
}

func TestBandAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec, records := sampleSession(0, "release")
	id, err := st.InsertSession(ctx, rec, records)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}

	aggs, err := st.ListBandAggregates(ctx, []int64{id})
	if err != nil {
		t.Fatalf("band aggregates: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(aggs))
	}
	if aggs[0].Band != 2 || aggs[0].Attempts != 1 || aggs[0].AvgDeviation != 1.0 {
		t.Fatalf("unexpected band 2 aggregate: %+v", aggs[0])
	}
	if aggs[1].Band != 7 || aggs[1].AvgDeviation != 2.0 {
		t.Fatalf("unexpected band 7 aggregate: %+v", aggs[1])
	}
}

func TestGetWeakBandsWindow(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec, records := sampleSession(i, "release")
		if _, err := st.InsertSession(ctx, rec, records); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	aggs, err := st.GetWeakBands(ctx, 2, "release")
	if err != nil {
		t.Fatalf("weak bands: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(aggs))
	}
	for _, agg := range aggs {
		if agg.Attempts != 2 {
			t.Fatalf("window of 2 sessions should give 2 attempts per band, got %+v", agg)
		}
	}

	none, err := st.GetWeakBands(ctx, 0, "")
	if err != nil {
		t.Fatalf("weak bands zero window: %v", err)
	}
	if none != nil {
		t.Fatalf("zero window should return nil, got %+v", none)
	}
}

func TestListRecordsForSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec, records := sampleSession(0, "release")
	id, err := st.InsertSession(ctx, rec, records)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}

	byID, err := st.ListRecordsForSessions(ctx, []int64{id})
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	got := byID[id]
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].TargetValue != 25 || got[1].TargetValue != 75 {
		t.Fatalf("records out of sequence order: %+v", got)
	}
}
