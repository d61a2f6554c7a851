package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaigns.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	if err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCampaignRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreateCampaign(ctx, Campaign{
		Name:           "Spring Sale",
		Budget:         5000,
		Impressions:    150000,
		Clicks:         4500,
		Conversions:    180,
		CTR:            3.0,
		CPC:            1.11,
		ConversionRate: 4.0,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assert.NotZero(t, created.ID)
	assert.Equal(t, "active", created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, ok, err := store.GetCampaign(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assert.True(t, ok)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Budget, got.Budget)
	assert.Equal(t, created.CTR, got.CTR)
}

func TestGetCampaignNotFound(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.GetCampaign(context.Background(), 12345)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assert.False(t, ok)
}

func TestListCampaignsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := store.CreateCampaign(ctx, Campaign{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	campaigns, err := store.ListCampaigns(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assert.Len(t, campaigns, 3)
	assert.Equal(t, "third", campaigns[0].Name)
	assert.Equal(t, "first", campaigns[2].Name)
}

func TestDeleteCampaign(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreateCampaign(ctx, Campaign{Name: "doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := store.DeleteCampaign(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	assert.True(t, deleted)

	_, ok, err := store.GetCampaign(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assert.False(t, ok)

	// Its performance logs go with it.
	var n int64
	err = store.db.QueryRow(`SELECT COUNT(*) FROM performance_logs WHERE campaign_id = ?`, created.ID).Scan(&n)
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	assert.Zero(t, n)
}

func TestDeleteCampaignNotFound(t *testing.T) {
	store := openTestStore(t)

	deleted, err := store.DeleteCampaign(context.Background(), 999)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	assert.False(t, deleted)
}

func TestCreateCampaignWritesPerformanceLogs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreateCampaign(ctx, Campaign{
		Name: "logged", CTR: 1.5, CPC: 2.0, ConversionRate: 3.0,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var n int64
	err = store.db.QueryRow(`SELECT COUNT(*) FROM performance_logs WHERE campaign_id = ?`, created.ID).Scan(&n)
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	assert.EqualValues(t, 3, n)
}

func TestSeed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	count, err := store.Seed(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	assert.Equal(t, 6, count)

	total, err := store.CountCampaigns(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	assert.EqualValues(t, 6, total)

	// Seeded rows carry derived metrics, not just raw counters.
	campaigns, err := store.ListCampaigns(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range campaigns {
		if c.Impressions > 0 && c.Clicks > 0 {
			assert.NotZero(t, c.CTR, "campaign %q", c.Name)
		}
	}
}
