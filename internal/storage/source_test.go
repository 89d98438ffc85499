package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/corpus/corpustest"
	"corpus-backend/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// failingPut wraps a store and fails every Put of one object.
type failingPut struct {
	ObjectStore
	object string
}

func (f *failingPut) Put(ctx context.Context, name string, data []byte) error {
	if name == f.object {
		return errors.New("disk full")
	}
	return f.ObjectStore.Put(ctx, name, data)
}

func seededSource(t *testing.T) (*Source, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(nil)
	src := NewSource(store, testLogger())
	_, err := src.WriteAll(context.Background(), corpustest.Records())
	require.NoError(t, err)
	return src, store
}

func TestSource_LoadBuildsFixture(t *testing.T) {
	src, _ := seededSource(t)

	r, marker, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Positive(t, marker)

	g, err := corpus.Build(r)
	require.NoError(t, err)
	assert.Equal(t, corpustest.Graph().Counts(), g.Counts())
}

func TestSource_LoadMissingTable(t *testing.T) {
	store := NewMemoryStore(map[string][]byte{MoviesObject: []byte("movie_id,title,year,imdb_rating,imdb_votes,raw_script_url\n")})
	src := NewSource(store, testLogger())

	_, _, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, corpus.KindBackendUnavailable, corpus.KindOf(err))
	assert.Contains(t, err.Error(), CharactersObject)
}

func TestSource_MarkerDefaultsToZero(t *testing.T) {
	src := NewSource(NewMemoryStore(nil), testLogger())

	marker, err := src.Marker(context.Background())
	require.NoError(t, err)
	assert.Zero(t, marker)
}

func TestSource_TouchIsMonotonic(t *testing.T) {
	store := NewMemoryStore(map[string][]byte{MarkerObject: []byte("5000\n")})
	src := NewSource(store, testLogger())
	src.now = func() time.Time { return time.Unix(0, 10) }

	marker, err := src.Touch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5001), marker)

	stored, err := src.Marker(context.Background())
	require.NoError(t, err)
	assert.Equal(t, marker, stored)
}

func TestSource_AppendConversation(t *testing.T) {
	src, _ := seededSource(t)
	ctx := context.Background()
	before, err := src.Marker(ctx)
	require.NoError(t, err)

	conv := models.Conversation{ID: 8, Character1ID: 0, Character2ID: 1, MovieID: 0}
	lines := []models.Line{{ID: 82, CharacterID: 0, MovieID: 0, ConversationID: 8, LineSort: 0, LineText: "testing, the api"}}

	marker, err := src.AppendConversation(ctx, conv, lines)
	require.NoError(t, err)
	assert.Greater(t, marker, before)

	r, loadedMarker, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, marker, loadedMarker)
	assert.Equal(t, conv, r.Conversations[len(r.Conversations)-1])
	assert.Equal(t, lines[0], r.Lines[len(r.Lines)-1])
}

func TestSource_AppendConversationRestoresOnLinesFailure(t *testing.T) {
	_, mem := seededSource(t)
	original := mem.Objects()

	src := NewSource(&failingPut{ObjectStore: mem, object: LinesObject}, testLogger())
	_, err := src.AppendConversation(context.Background(),
		models.Conversation{ID: 8, Character1ID: 0, Character2ID: 1, MovieID: 0},
		[]models.Line{{ID: 82, CharacterID: 0, MovieID: 0, ConversationID: 8, LineText: "lost"}},
	)
	require.Error(t, err)

	after := mem.Objects()
	assert.Equal(t, string(original[ConversationsObject]), string(after[ConversationsObject]))
	assert.Equal(t, string(original[LinesObject]), string(after[LinesObject]))
	assert.Equal(t, string(original[MarkerObject]), string(after[MarkerObject]))
}

func TestDirStore_PutGet(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, MarkerObject)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, store.Put(ctx, MarkerObject, []byte("1")))
	require.NoError(t, store.Put(ctx, MarkerObject, []byte("2")))

	data, err := store.Get(ctx, MarkerObject)
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))
}

func TestNewDirStore_RejectsFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "plain.txt", []byte("x")))

	_, err = NewDirStore(dir + "/plain.txt")
	assert.Error(t, err)
}
