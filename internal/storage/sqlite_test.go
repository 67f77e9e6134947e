package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vlfom/predator-prey/internal/telemetry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRun(scenario string, score float64) Run {
	return Run{
		Scenario:      scenario,
		Seed:          1337,
		Height:        9,
		Width:         9,
		PredVitality:  6,
		PreyFoodValue: 7,
		SpawnRate:     8,
		Ticks:         3,
		FinalPrey:     40,
		FinalPred:     12,
		PreyExtinctAt: -1,
		PredExtinctAt: -1,
		Score:         score,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	run := testRun("classic", 3.5)
	run.Preset = "v6-f7-s8"
	run.PredExtinctAt = 2
	samples := []telemetry.Sample{
		{Tick: 0, Prey: 56, Predators: 24},
		{Tick: 1, Prey: 50, Predators: 10},
		{Tick: 2, Prey: 48, Predators: 0},
	}

	id, err := store.SaveRun(run, samples)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for saved run")
	}

	if got.Scenario != "classic" || got.Preset != "v6-f7-s8" || got.Seed != 1337 {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.PredVitality != 6 || got.PreyFoodValue != 7 || got.SpawnRate != 8 {
		t.Errorf("unexpected params: %+v", got)
	}
	if got.PreyExtinctAt != -1 || got.PredExtinctAt != 2 {
		t.Errorf("unexpected extinction ticks: prey %d pred %d", got.PreyExtinctAt, got.PredExtinctAt)
	}
	if got.Score != 3.5 {
		t.Errorf("expected score 3.5, got %f", got.Score)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	back, err := store.Samples(id)
	if err != nil {
		t.Fatalf("Samples() failed: %v", err)
	}
	if len(back) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(back))
	}
	for i := range samples {
		if back[i] != samples[i] {
			t.Errorf("sample %d: expected %+v, got %+v", i, samples[i], back[i])
		}
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(42)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

func TestStoreOrdering(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []float64{10, 30, 20} {
		if _, err := store.SaveRun(testRun("random", score), nil); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns(2)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 2 || best[0].Score != 30 || best[1].Score != 20 {
		t.Errorf("unexpected best runs: %+v", best)
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].Score != 20 || recent[2].Score != 10 {
		t.Errorf("recent runs should be newest first: %+v", recent)
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(testRun("classic", 1), []telemetry.Sample{{Tick: 0, Prey: 1, Predators: 1}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	keep, err := store.SaveRun(testRun("random", 2), []telemetry.Sample{{Tick: 0, Prey: 3, Predators: 2}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}

	if got, _ := store.RunByID(id); got != nil {
		t.Error("run should be gone")
	}
	if samples, _ := store.Samples(id); len(samples) != 0 {
		t.Errorf("samples should be gone, got %d", len(samples))
	}

	if got, _ := store.RunByID(keep); got == nil {
		t.Error("other runs should survive a delete")
	}
	if samples, _ := store.Samples(keep); len(samples) != 1 {
		t.Errorf("other run's samples should survive, got %d", len(samples))
	}

	// The store stays usable after the delete commits.
	if err := store.DeleteRun(id); err != nil {
		t.Errorf("deleting a missing run should not fail: %v", err)
	}
	if _, err := store.SaveRun(testRun("classic", 3), nil); err != nil {
		t.Errorf("SaveRun() after delete failed: %v", err)
	}
}
