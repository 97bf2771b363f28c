package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) storage.ScoreRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testScore(title, composer string, letters ...core.Letter) *core.Score {
	part := core.Part{Clef: "treble"}
	for i, l := range letters {
		e := core.NewNote(core.Pitch{Letter: l, Octave: 4, HasOctave: true}, core.Duration{Type: core.Quarter})
		e.Measure = i/4 + 1
		e.Offset = float64(i)
		part.Elements = append(part.Elements, e)
	}
	return &core.Score{Title: title, Composer: composer, Parts: []core.Part{part}}
}

func TestNewScoreRepository_NilBackend(t *testing.T) {
	repo, err := NewScoreRepository(nil)
	require.Error(t, err)
	assert.Nil(t, repo)
}

func TestAddScore(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	score := testScore("Invention 1", "Bach", core.LetterC, core.LetterD, core.LetterE)
	added, err := repo.AddScore(ctx, score)
	require.NoError(t, err)
	assert.Equal(t, core.IDFromContent(score.Key()), added.Id)

	got, err := repo.GetScore(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, "Invention 1", got.Title)
	assert.Equal(t, "Bach", got.Composer)
	require.Len(t, got.Parts, 1)
	assert.Equal(t, score.Parts[0].Elements, got.Parts[0].Elements)
}

func TestAddScore_Invalid(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.AddScore(context.Background(), &core.Score{})
	assert.ErrorIs(t, err, core.ErrInvalidScore)
}

func TestAddScore_Duplicate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.AddScore(ctx, testScore("Invention 1", "Bach", core.LetterC))
	require.NoError(t, err)

	_, err = repo.AddScore(ctx, testScore("Invention 1", "Bach", core.LetterG))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Same title by another composer is a different score.
	_, err = repo.AddScore(ctx, testScore("Invention 1", "Anon", core.LetterG))
	require.NoError(t, err)
}

func TestAddScore_CanceledContext(t *testing.T) {
	repo := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.AddScore(ctx, testScore("Invention 1", "Bach", core.LetterC))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetScore_NotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.GetScore(context.Background(), 12345)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindScoreByTitle(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first, err := repo.AddScore(ctx, testScore("Invention 1", "Bach", core.LetterC))
	require.NoError(t, err)
	second, err := repo.AddScore(ctx, testScore("Invention 1", "Anon", core.LetterD))
	require.NoError(t, err)
	_, err = repo.AddScore(ctx, testScore("Invention 10", "Bach", core.LetterE))
	require.NoError(t, err)

	got, err := repo.FindScoreByTitle(ctx, "  invention 1 ")
	require.NoError(t, err)
	assert.Equal(t, min(first.Id, second.Id), got.Id)

	got, err = repo.FindScoreByTitle(ctx, "INVENTION 10")
	require.NoError(t, err)
	assert.Equal(t, "Invention 10", got.Title)

	_, err = repo.FindScoreByTitle(ctx, "Invention")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.FindScoreByTitle(ctx, "   ")
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestListScores(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	empty, err := repo.ListScores(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, s := range []*core.Score{
		testScore("sonata", "Scarlatti", core.LetterA, core.LetterB),
		testScore("Air", "Bach", core.LetterC),
		testScore("minuet", "Bach", core.LetterD, core.LetterE, core.LetterF),
	} {
		_, err := repo.AddScore(ctx, s)
		require.NoError(t, err)
	}

	list, err := repo.ListScores(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Air", list[0].Title)
	assert.Equal(t, "minuet", list[1].Title)
	assert.Equal(t, "sonata", list[2].Title)
	assert.Equal(t, 3, list[1].Notes)
	assert.Equal(t, 1, list[1].Parts)
	assert.Equal(t, "Scarlatti", list[2].Composer)
}

func TestDeleteScore(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	added, err := repo.AddScore(ctx, testScore("Air", "Bach", core.LetterC))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteScore(ctx, added.Id))

	_, err = repo.GetScore(ctx, added.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.FindScoreByTitle(ctx, "Air")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteScore(ctx, added.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The title can be stored again after deletion.
	_, err = repo.AddScore(ctx, testScore("Air", "Bach", core.LetterD))
	require.NoError(t, err)
}

func TestWithTransaction_Repository(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("failed transaction leaves nothing behind", func(t *testing.T) {
		err := repo.WithTransaction(ctx, func(ctx context.Context) error {
			added, err := repo.AddScore(ctx, testScore("Fugue", "Bach", core.LetterC))
			require.NoError(t, err)

			// Reads inside the transaction see its writes.
			got, err := repo.FindScoreByTitle(ctx, "fugue")
			require.NoError(t, err)
			assert.Equal(t, added.Id, got.Id)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = repo.FindScoreByTitle(ctx, "Fugue")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		list, err := repo.ListScores(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("lookup and delete commit together", func(t *testing.T) {
		added, err := repo.AddScore(ctx, testScore("Sarabande", "Bach", core.LetterE))
		require.NoError(t, err)

		err = repo.WithTransaction(ctx, func(ctx context.Context) error {
			score, err := repo.FindScoreByTitle(ctx, "Sarabande")
			if err != nil {
				return err
			}
			return repo.DeleteScore(ctx, score.Id)
		})
		require.NoError(t, err)

		_, err = repo.GetScore(ctx, added.Id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("aborted delete keeps the score", func(t *testing.T) {
		added, err := repo.AddScore(ctx, testScore("Gigue", "Bach", core.LetterG))
		require.NoError(t, err)

		err = repo.WithTransaction(ctx, func(ctx context.Context) error {
			if err := repo.DeleteScore(ctx, added.Id); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.GetScore(ctx, added.Id)
		require.NoError(t, err)
		assert.Equal(t, "Gigue", got.Title)
	})
}
