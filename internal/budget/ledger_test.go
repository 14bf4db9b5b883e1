package budget

import (
	"errors"
	"path/filepath"
	"testing"
)

type fakeStore struct {
	value   int64
	origin  Origin
	saveErr error
	saved   []int64
}

func (f *fakeStore) Load() LoadResult {
	return LoadResult{Used: f.value, Origin: f.origin}
}

func (f *fakeStore) Save(used int64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.value = used
	f.saved = append(f.saved, used)
	return nil
}

func (f *fakeStore) Reset() error     { f.value = 0; return nil }
func (f *fakeStore) Location() string { return "fake" }
func (f *fakeStore) Close() error     { return nil }

func newTestLedger(t *testing.T, used, ceiling int64) *Ledger {
	t.Helper()
	origin := OriginPersisted
	if used == 0 {
		origin = OriginFresh
	}
	return Open(&fakeStore{value: used, origin: origin}, ceiling, nil)
}

func TestFreshStateLoadsZero(t *testing.T) {
	ledger := Open(&fakeStore{origin: OriginFresh}, 100, nil)
	if ledger.Used() != 0 {
		t.Fatalf("used = %d, want 0", ledger.Used())
	}
	if ledger.Origin() != OriginFresh {
		t.Fatalf("origin = %s, want fresh", ledger.Origin())
	}
}

func TestGateCorrectness(t *testing.T) {
	cases := []struct {
		used, ceiling, amount int64
		want                  bool
	}{
		{0, 10, 10, true},
		{0, 10, 11, false},
		{5, 10, 5, true},
		{5, 10, 6, false},
		{10, 10, 0, true},
		{10, 10, 1, false},
		{0, 0, 0, true},
		{0, 0, 1, false},
	}
	for _, tc := range cases {
		ledger := newTestLedger(t, tc.used, tc.ceiling)
		if got := ledger.CanSpend(tc.amount); got != tc.want {
			t.Fatalf("used=%d ceiling=%d CanSpend(%d) = %v, want %v",
				tc.used, tc.ceiling, tc.amount, got, tc.want)
		}
	}
}

func TestMonotonicSafety(t *testing.T) {
	ledger := newTestLedger(t, 0, 10)
	amounts := []int64{3, 3, 3, 3, 3, 3}
	for _, amount := range amounts {
		if !ledger.CanSpend(amount) {
			continue
		}
		ledger.Add(amount)
		if ledger.Used() > ledger.Ceiling() {
			t.Fatalf("used %d exceeded ceiling %d", ledger.Used(), ledger.Ceiling())
		}
	}
	if ledger.Used() != 9 {
		t.Fatalf("used = %d, want 9", ledger.Used())
	}
}

func TestBoundaryScenario(t *testing.T) {
	ledger := newTestLedger(t, 2899, 2900)
	if !ledger.CanSpend(1) {
		t.Fatal("CanSpend(1) at 2899/2900 should be true")
	}
	if ledger.CanSpend(2) {
		t.Fatal("CanSpend(2) at 2899/2900 should be false")
	}
	ledger.Add(1)
	if ledger.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", ledger.Remaining())
	}
	if ledger.CanSpend(1) {
		t.Fatal("CanSpend(1) at ceiling should be false")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credits.txt")
	store, err := NewFileStore(path, FileStoreOptions{})
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ledger := Open(store, 100, nil)
	ledger.Add(5)
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	fresh, err := NewFileStore(path, FileStoreOptions{})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer fresh.Close()
	reloaded := Open(fresh, 100, nil)
	if reloaded.Used() != 5 {
		t.Fatalf("reloaded used = %d, want 5", reloaded.Used())
	}
	if reloaded.Origin() != OriginPersisted {
		t.Fatalf("reloaded origin = %s, want persisted", reloaded.Origin())
	}
}

func TestIdempotentLoad(t *testing.T) {
	store := &fakeStore{value: 42, origin: OriginPersisted}
	first := store.Load()
	second := store.Load()
	if first.Used != second.Used || first.Origin != second.Origin {
		t.Fatalf("loads differ: %+v vs %+v", first, second)
	}
}

func TestAddPersistsEachIncrement(t *testing.T) {
	store := &fakeStore{origin: OriginFresh}
	ledger := Open(store, 100, nil)
	ledger.Add(2)
	ledger.Add(3)
	if len(store.saved) != 2 || store.saved[0] != 2 || store.saved[1] != 5 {
		t.Fatalf("saved totals = %v, want [2 5]", store.saved)
	}
}

func TestSaveFailureAdvancesInMemory(t *testing.T) {
	store := &fakeStore{origin: OriginFresh, saveErr: errors.New("disk full")}
	ledger := Open(store, 10, nil)
	ledger.Add(4)
	if ledger.Used() != 4 {
		t.Fatalf("used = %d, want 4 despite save failure", ledger.Used())
	}
	if ledger.CanSpend(7) {
		t.Fatal("gate must reflect unsaved spend")
	}
}

func TestAddIgnoresNonPositiveAmounts(t *testing.T) {
	store := &fakeStore{origin: OriginFresh}
	ledger := Open(store, 10, nil)
	ledger.Add(0)
	ledger.Add(-3)
	if ledger.Used() != 0 || len(store.saved) != 0 {
		t.Fatalf("used = %d saved = %v, want no change", ledger.Used(), store.saved)
	}
}
