package persist

import (
	"context"
	"reflect"
	"testing"
	"time"

	"salesdesk_backend/internal/leads/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testSnapshotter(t *testing.T) *Snapshotter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewWithClient(client, "test:leads:snapshot", nil)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	snap := testSnapshotter(t)
	ctx := context.Background()

	closed := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	leads := []*domain.Lead{
		{
			ID:          "lead-1",
			CompanyName: "Acme",
			Status:      domain.StatusClosedWon,
			CreatedAt:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
			StatusUpdatedAt: &closed,
			Contacts: []domain.Contact{
				{ID: "c1", Name: "Sara", Role: domain.RolePrimary},
			},
			OpeningHours: domain.DefaultOpeningHours(),
			Menu: domain.Menu{
				"Mains": {{Name: "Burger", Price: 35, HasPhoto: true}},
			},
			StageStatus: domain.NewStageStatusMap(),
			BankDetails: &domain.BankDetails{IBAN: "SA03", AccountOwnerName: "Acme"},
		},
		{
			ID:          "lead-2",
			CompanyName: "Beta",
			Status:      domain.StatusNewLeads,
			CreatedAt:   time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC),
			StageStatus: domain.NewStageStatusMap(),
		},
	}
	leads[0].Documents.CR = domain.DocVerified

	if err := snap.Save(ctx, leads); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := snap.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reflect.DeepEqual(leads, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", leads[0], loaded[0])
	}
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	snap := testSnapshotter(t)

	loaded, err := snap.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty snapshot, got %d leads", len(loaded))
	}
}
