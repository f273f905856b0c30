package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTransitionRepository_Recent_NewestFirst(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewTransitionRepository(badgerDB, blugeWriter, log, lo.ToPtr(50))
	now := time.Now().UTC()

	// Given three transitions stored in chronological order
	colors := []string{"red", "yellow", "green"}
	for i, color := range colors {
		req.NoError(repo.Store(StoredTransition{
			ID:      uuid.New(),
			Color:   color,
			Actor:   "alice",
			ActorID: uuid.New(),
			At:      now.Add(time.Duration(i) * time.Minute),
		}))
	}

	// When fetching the first page
	page, cursor, err := repo.Recent(nil)

	// Then the newest transition comes first
	req.NoError(err)
	req.Len(page, 3)
	req.Equal("green", page[0].Color)
	req.Equal("yellow", page[1].Color)
	req.Equal("red", page[2].Color)
	req.Nil(cursor, "A partial page is the last page")
}

func TestTransitionRepository_Recent_Pagination(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	limit := 2
	repo := NewTransitionRepository(badgerDB, blugeWriter, log, &limit)
	now := time.Now().UTC()

	for i := 1; i <= 5; i++ {
		req.NoError(repo.Store(StoredTransition{
			ID:      uuid.New(),
			Color:   "red",
			Actor:   fmt.Sprintf("actor-%d", i),
			ActorID: uuid.New(),
			At:      now.Add(time.Duration(i) * time.Minute),
		}))
	}

	// --- PAGE 1 ---
	page1, cursor1, err := repo.Recent(nil)
	req.NoError(err)
	req.Len(page1, 2)
	req.Equal("actor-5", page1[0].Actor)
	req.Equal("actor-4", page1[1].Actor)
	req.NotNil(cursor1)

	// --- PAGE 2 ---
	page2, cursor2, err := repo.Recent(cursor1)
	req.NoError(err)
	req.Len(page2, 2)
	req.Equal("actor-3", page2[0].Actor)
	req.Equal("actor-2", page2[1].Actor)
	req.NotNil(cursor2)

	// --- PAGE 3 ---
	page3, cursor3, err := repo.Recent(cursor2)
	req.NoError(err)
	req.Len(page3, 1)
	req.Equal("actor-1", page3[0].Actor)
	req.Nil(cursor3, "Last page should have nil cursor")
}

func TestTransitionRepository_Recent_EmptyStore(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewTransitionRepository(badgerDB, blugeWriter, log, lo.ToPtr(50))

	page, cursor, err := repo.Recent(nil)

	req.NoError(err)
	req.Empty(page)
	req.Nil(cursor)
}

func TestTransitionRepository_SearchByActor(t *testing.T) {
	req := require.New(t)
	ctx, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewTransitionRepository(badgerDB, blugeWriter, log, lo.ToPtr(50))
	now := time.Now().UTC()

	// Given transitions from two different actors
	aliceID := uuid.New()
	req.NoError(repo.Store(StoredTransition{
		ID: uuid.New(), Color: "red", Actor: "alice", ActorID: aliceID, At: now,
	}))
	req.NoError(repo.Store(StoredTransition{
		ID: uuid.New(), Color: "green", Actor: "alice", ActorID: aliceID, At: now.Add(time.Minute),
	}))
	req.NoError(repo.Store(StoredTransition{
		ID: uuid.New(), Color: "yellow", Actor: "bob", ActorID: uuid.New(), At: now.Add(2 * time.Minute),
	}))

	// When searching for one actor
	results, err := repo.SearchByActor(ctx, "alice", 10)

	// Then only that actor's transitions come back, fully hydrated
	req.NoError(err)
	req.Len(results, 2)
	for _, transition := range results {
		req.Equal("alice", transition.Actor)
		req.Equal(aliceID, transition.ActorID)
		req.NotEqual(uuid.Nil, transition.ID)
	}
}

func TestTransitionRepository_SearchByActor_CaseInsensitive(t *testing.T) {
	req := require.New(t)
	ctx, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewTransitionRepository(badgerDB, blugeWriter, log, lo.ToPtr(50))

	req.NoError(repo.Store(StoredTransition{
		ID: uuid.New(), Color: "red", Actor: "Alice", ActorID: uuid.New(), At: time.Now().UTC(),
	}))

	for _, query := range []string{"alice", "ALICE", "Alice"} {
		results, err := repo.SearchByActor(ctx, query, 10)
		req.NoError(err, "Query: %s", query)
		req.Len(results, 1, "Query: %s", query)
	}
}

func TestTransitionRepository_SearchByActor_NoResults(t *testing.T) {
	req := require.New(t)
	ctx, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewTransitionRepository(badgerDB, blugeWriter, log, lo.ToPtr(50))

	req.NoError(repo.Store(StoredTransition{
		ID: uuid.New(), Color: "red", Actor: "alice", ActorID: uuid.New(), At: time.Now().UTC(),
	}))

	results, err := repo.SearchByActor(ctx, "nonexistent", 10)

	req.NoError(err)
	req.Empty(results)
}
