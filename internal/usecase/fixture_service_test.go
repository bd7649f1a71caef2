package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/fixture"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

const fixturesCompletionText = "```json\n[" +
	`{"homeTeam": "Arsenal", "awayTeam": "Chelsea", "league": "Premier League", "kickoff": "17:30", "status": "SCHEDULED"},` +
	`{"homeTeam": "Liverpool", "awayTeam": "Everton", "league": "Premier League", "matchTime": "61'", "score": "1-1", "status": "LIVE"}` +
	"]\n```"

func newFixtureService(client *fakeClient, probe Probe) (*FixtureService, *fakeClient) {
	store, _ := newTestCache()
	return NewFixtureService(client, probe, store, logging.NewNop(), 30*time.Minute), client
}

func TestListFixtures_ParsesAndCaches(t *testing.T) {
	t.Parallel()

	svc, client := newFixtureService(&fakeClient{generate: staticCompletion(fixturesCompletionText)}, fakeProbe{online: true})
	ctx := context.Background()

	rows, err := svc.ListFixtures(ctx, "Premier League", "2026-08-30", sport.Soccer)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d fixtures, want 2", len(rows))
	}
	if !rows[1].IsLive() || rows[1].Score != "1-1" {
		t.Fatalf("live row not preserved: %+v", rows[1])
	}

	if _, err := svc.ListFixtures(ctx, "Premier League", "2026-08-30", sport.Soccer); err != nil {
		t.Fatalf("cached list failed: %v", err)
	}
	if client.calls.Load() != 1 {
		t.Fatalf("provider called %d times, want 1", client.calls.Load())
	}
}

func TestListFixtures_OfflineServesBackupSlate(t *testing.T) {
	t.Parallel()

	svc, client := newFixtureService(&fakeClient{}, fakeProbe{})

	rows, err := svc.ListFixtures(context.Background(), "", "", sport.Basketball)
	if err != nil {
		t.Fatalf("offline list must not error: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("backup slate empty")
	}
	for _, row := range rows {
		if row.Sport != sport.Basketball {
			t.Fatalf("backup row has sport %q", row.Sport)
		}
	}
	if client.calls.Load() != 0 {
		t.Fatal("offline mode must not call the provider")
	}
}

func TestListFixtures_RateLimitServesBackupUncached(t *testing.T) {
	t.Parallel()

	client := &fakeClient{generate: func(context.Context, string, bool) (Completion, error) {
		return Completion{}, ErrRateLimited
	}}
	store, blobs := newTestCache()
	svc := NewFixtureService(client, fakeProbe{online: true}, store, logging.NewNop(), 0)

	rows, err := svc.ListFixtures(context.Background(), "", "", sport.Soccer)
	if err != nil {
		t.Fatalf("rate-limited list must not error: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("backup slate empty")
	}
	if blobs.Len() != 0 {
		t.Fatal("backup slate leaked into the cache")
	}
}

func TestListFixtures_UnparseablePayloadServesBackup(t *testing.T) {
	t.Parallel()

	svc, _ := newFixtureService(&fakeClient{generate: staticCompletion("sorry, no fixtures today")}, fakeProbe{online: true})

	rows, err := svc.ListFixtures(context.Background(), "", "", sport.Soccer)
	if err != nil {
		t.Fatalf("unparseable payload must degrade, not fail: %v", err)
	}
	if len(rows) != len(fixture.BackupList(sport.Soccer)) {
		t.Fatalf("got %d rows, want the backup slate", len(rows))
	}
}

func TestListFixtures_TransportErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("dial tcp: timeout")
	svc, _ := newFixtureService(&fakeClient{generate: func(context.Context, string, bool) (Completion, error) {
		return Completion{}, boom
	}}, fakeProbe{online: true})

	if _, err := svc.ListFixtures(context.Background(), "", "", sport.Soccer); !errors.Is(err, boom) {
		t.Fatalf("error=%v, want wrapped transport error", err)
	}
}
