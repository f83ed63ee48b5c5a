package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/wealthyways/wealthyways/internal/advisor"
)

func openTest(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestSave_AssignsIDAndTime(t *testing.T) {
	h := openTest(t)
	ctx := context.Background()

	adv := advisor.Advice{
		Snapshot: advisor.Snapshot{Income: 50000, Expenses: 30000, Savings: 10000},
		Category: advisor.BasicSaving,
		Score:    19.9996,
		Tier:     advisor.TierSteady,
	}
	saved, err := h.Save(ctx, NewRecord(adv, "models/m.json"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected an ID to be generated")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Recent len = %d, want 1", len(got))
	}
	r := got[0]
	if r.ID != saved.ID {
		t.Errorf("ID = %s, want %s", r.ID, saved.ID)
	}
	if r.Snapshot != adv.Snapshot {
		t.Errorf("Snapshot = %+v, want %+v", r.Snapshot, adv.Snapshot)
	}
	if r.Category != advisor.BasicSaving || r.Tier != advisor.TierSteady || r.Score != 19.9996 {
		t.Errorf("record = %+v", r)
	}
	if r.ModelPath != "models/m.json" {
		t.Errorf("ModelPath = %q", r.ModelPath)
	}
	if !r.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", r.CreatedAt, saved.CreatedAt)
	}
}

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	h := openTest(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	categories := []advisor.Category{advisor.EmergencyMode, advisor.BasicSaving, advisor.InvestmentReady}
	for i, c := range categories {
		_, err := h.Save(ctx, Record{
			ID:        c.String(),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Category:  c,
			Tier:      advisor.TierRebalance,
		})
		if err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
	}

	got, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) len = %d", len(got))
	}
	if got[0].Category != advisor.InvestmentReady || got[1].Category != advisor.BasicSaving {
		t.Errorf("order = [%s, %s], want [Investment Ready, Basic Saving]", got[0].Category, got[1].Category)
	}

	all, err := h.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent(0) len = %d, want 3", len(all))
	}
}

func TestSave_DuplicateID(t *testing.T) {
	h := openTest(t)
	ctx := context.Background()

	r := Record{ID: "fixed", Category: advisor.BasicSaving, Tier: advisor.TierSteady}
	if _, err := h.Save(ctx, r); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := h.Save(ctx, r); err == nil {
		t.Fatal("second Save with the same ID should fail")
	}
}

func TestCountByCategoryAndClear(t *testing.T) {
	h := openTest(t)
	ctx := context.Background()

	for _, c := range []advisor.Category{
		advisor.BasicSaving, advisor.BasicSaving, advisor.CutExpenses,
	} {
		if _, err := h.Save(ctx, Record{Category: c, Tier: advisor.TierSteady}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	counts, err := h.CountByCategory(ctx)
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts[advisor.BasicSaving] != 2 || counts[advisor.CutExpenses] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts[advisor.EmergencyMode]; ok {
		t.Error("unexpected Emergency Mode count")
	}

	n, err := h.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	left, err := h.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("Recent after Clear len = %d", len(left))
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := h.Save(ctx, Record{Category: advisor.EmergencyMode, Tier: advisor.TierRebalance}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	h, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer h.Close()

	got, err := h.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Category != advisor.EmergencyMode {
		t.Errorf("after reopen = %+v", got)
	}
}
