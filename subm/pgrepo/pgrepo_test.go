package pgrepo

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/peterldowns/pgtestdb"
	"github.com/peterldowns/pgtestdb/migrators/golangmigrator"
	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/speedrun-coding/backend/subm/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDB returns a connection pool to a unique and isolated test database,
// fully migrated and ready for testing
func newDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("PGTESTDB") != "1" {
		t.Skip("set PGTESTDB=1 to run tests against the local dev postgres")
	}
	ctx := context.Background()
	conf := pgtestdb.Config{
		DriverName: "pgx",
		User:       "speedrun", // local dev pg user
		Password:   "speedrun", // local dev pg password
		Host:       "localhost",
		Port:       "5433",
		Options:    "sslmode=disable",
	}
	gm := golangmigrator.New("../../migrate")
	config := pgtestdb.Custom(t, conf, gm)

	pool, err := pgxpool.New(ctx, config.URL())
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Close()
	})
	return pool
}

var (
	authorUuid = uuid.New()
	otherUuid  = uuid.New()
)

const problemID = int64(1)

// newSampleDB adds two users and one problem to the result of newDB
func newSampleDB(t *testing.T) *pgxpool.Pool {
	db := newDB(t)
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO users (uuid, username, email) VALUES
			($1, 'alice', 'alice@example.com'),
			($2, 'bob', 'bob@example.com')
	`, authorUuid, otherUuid)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO problems (id, slug, title, enabled) VALUES
			(1, 'two-sum', 'Two Sum', TRUE),
			(2, 'trie', 'Trie', TRUE)
	`)
	require.NoError(t, err)
	return db
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleSubm(author uuid.UUID, problem int64, submittedAt time.Time, durationMs int64, passed bool) domain.Subm {
	mem := int64(4096)
	raw, _ := json.Marshal(execsrvc.ExecResult{Status: execsrvc.StatusSuccess})
	rank := domain.DefaultRank
	if passed {
		rank = "Wizard"
	}
	return domain.Subm{
		UUID:        uuid.New(),
		AuthorUUID:  author,
		ProblemID:   problem,
		Language:    "python",
		Code:        "print('hello')",
		StartedAt:   submittedAt.Add(-time.Duration(durationMs) * time.Millisecond),
		SubmittedAt: submittedAt,
		Status:      execsrvc.StatusSuccess,
		DurationMs:  durationMs,
		MemoryKb:    &mem,
		Passed:      passed,
		Rank:        rank,
		RawResults:  raw,
	}
}

func TestStoreAndGetSubm(t *testing.T) {
	repo := NewPgSubmRepo(newSampleDB(t))
	ctx := context.Background()

	s := sampleSubm(authorUuid, problemID, t0, 240_000, true)
	require.NoError(t, repo.StoreSubm(ctx, s))

	got, err := repo.GetSubm(ctx, s.UUID)
	require.NoError(t, err)
	assert.Equal(t, s.UUID, got.UUID)
	assert.Equal(t, s.AuthorUUID, got.AuthorUUID)
	assert.Equal(t, s.Status, got.Status)
	assert.Equal(t, s.DurationMs, got.DurationMs)
	assert.Equal(t, *s.MemoryKb, *got.MemoryKb)
	assert.Equal(t, s.Rank, got.Rank)
	assert.True(t, s.SubmittedAt.Equal(got.SubmittedAt))
	assert.True(t, s.StartedAt.Equal(got.StartedAt))
	assert.JSONEq(t, string(s.RawResults), string(got.RawResults))

	// submissions are immutable
	require.Error(t, repo.StoreSubm(ctx, s))
}

func TestGetSubmNotFound(t *testing.T) {
	repo := NewPgSubmRepo(newSampleDB(t))
	_, err := repo.GetSubm(context.Background(), uuid.New())
	var se *srvcerror.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, domain.ErrCodeSubmNotFound, se.ErrorCode())
}

func TestListSubms(t *testing.T) {
	repo := NewPgSubmRepo(newSampleDB(t))
	ctx := context.Background()

	subms := []domain.Subm{
		sampleSubm(authorUuid, problemID, t0, 60_000, true),
		sampleSubm(authorUuid, problemID, t0.Add(time.Minute), 1_000, false),
		sampleSubm(authorUuid, problemID+1, t0.Add(2*time.Minute), 90_000, true),
		sampleSubm(otherUuid, problemID, t0.Add(3*time.Minute), 30_000, true),
	}
	for _, s := range subms {
		require.NoError(t, repo.StoreSubm(ctx, s))
	}

	author := authorUuid
	own, err := repo.ListSubms(ctx, domain.SubmFilter{AuthorUUID: &author})
	require.NoError(t, err)
	require.Len(t, own, 3)
	assert.Equal(t, subms[2].UUID, own[0].UUID)
	assert.Equal(t, subms[0].UUID, own[2].UUID)

	pid := problemID
	byProblem, err := repo.ListSubms(ctx, domain.SubmFilter{ProblemID: &pid})
	require.NoError(t, err)
	assert.Len(t, byProblem, 3)

	minDur := int64(5000)
	counted, err := repo.ListSubms(ctx, domain.SubmFilter{AuthorUUID: &author, MinDurationMs: &minDur})
	require.NoError(t, err)
	assert.Len(t, counted, 2)

	page, err := repo.ListSubms(ctx, domain.SubmFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, subms[2].UUID, page[0].UUID)
	assert.Equal(t, subms[1].UUID, page[1].UUID)
}

func TestGetStats(t *testing.T) {
	repo := NewPgSubmRepo(newSampleDB(t))
	ctx := context.Background()

	st, err := repo.GetStats(ctx, authorUuid)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Total)
	assert.Nil(t, st.AvgDurationMs)

	for _, s := range []domain.Subm{
		sampleSubm(authorUuid, problemID, t0, 60_000, true),
		sampleSubm(authorUuid, problemID, t0.Add(time.Minute), 120_000, true),
		sampleSubm(authorUuid, problemID+1, t0.Add(2*time.Minute), 10_000, false),
	} {
		require.NoError(t, repo.StoreSubm(ctx, s))
	}

	st, err = repo.GetStats(ctx, authorUuid)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Successful)
	require.NotNil(t, st.AvgDurationMs)
	assert.InDelta(t, 90_000.0, *st.AvgDurationMs, 1e-6)
	assert.Equal(t, 1, st.ProblemsSolved)
}
