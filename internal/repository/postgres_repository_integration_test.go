//go:build integration

package repository

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"corpus-backend/internal/config"
	"corpus-backend/internal/corpus"
	"corpus-backend/internal/corpus/corpustest"
	"corpus-backend/internal/database"
	"corpus-backend/internal/models"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startPostgres(t *testing.T) *database.Database {
	t.Helper()
	skipIfNoDocker(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "corpus",
				"POSTGRES_PASSWORD": "corpus",
				"POSTGRES_DB":       "corpus",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := database.Connect(config.DatabaseConfig{
		Host:            host,
		Port:            port.Port(),
		User:            "corpus",
		Password:        "corpus",
		DBName:          "corpus",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		QueryTimeout:    10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func importedPostgres(t *testing.T) *PostgresRepository {
	t.Helper()
	repo := NewPostgresRepository(startPostgres(t), testLogger())
	log, err := repo.Import(context.Background(), corpustest.Records(), "fixture")
	require.NoError(t, err)
	require.Equal(t, "success", log.Status)
	return repo
}

// Both backends must answer every query identically on the same data.
func TestPostgresRepository_MatchesGraph(t *testing.T) {
	pg := importedPostgres(t)
	mem := newLoadedRepo(t, seededStore(t), 0)
	ctx := context.Background()
	page := corpus.Page{Limit: 50}

	for _, id := range []int64{0, 1, 2} {
		want, err := mem.GetMovie(ctx, id)
		require.NoError(t, err)
		got, err := pg.GetMovie(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, "movie %d", id)
	}

	for _, c := range corpustest.Characters() {
		want, err := mem.GetCharacter(ctx, c.ID)
		require.NoError(t, err)
		got, err := pg.GetCharacter(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, "character %d", c.ID)
	}

	for _, cv := range corpustest.Conversations() {
		want, err := mem.GetConversation(ctx, cv.ID)
		require.NoError(t, err)
		got, err := pg.GetConversation(ctx, cv.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, "conversation %d", cv.ID)
	}

	for _, l := range corpustest.Lines() {
		want, err := mem.GetLine(ctx, l.ID)
		require.NoError(t, err)
		got, err := pg.GetLine(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, "line %d", l.ID)
	}

	for _, sort := range []corpus.MovieSort{corpus.MovieSortTitle, corpus.MovieSortYear, corpus.MovieSortRating} {
		q := MovieQuery{Sort: sort, Page: page}
		want, err := mem.ListMovies(ctx, q)
		require.NoError(t, err)
		got, err := pg.ListMovies(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, want, got, "movies by %s", sort)
	}

	for _, sort := range []corpus.CharacterSort{corpus.CharacterSortName, corpus.CharacterSortMovie, corpus.CharacterSortLines} {
		q := CharacterQuery{Sort: sort, Page: corpus.Page{Limit: 5, Offset: 2}}
		want, err := mem.ListCharacters(ctx, q)
		require.NoError(t, err)
		got, err := pg.ListCharacters(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, want, got, "characters by %s", sort)
	}

	for _, q := range []LineQuery{
		{Page: page},
		{Character: "dr. manhattan", Movie: "watchmen", Page: page},
		{Movie: "THINGS", Page: corpus.Page{Limit: 3, Offset: 4}},
	} {
		want, err := mem.ListLines(ctx, q)
		require.NoError(t, err)
		got, err := pg.ListLines(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, want, got, "lines %+v", q)
	}

	_, err := pg.GetLine(ctx, 400)
	assert.True(t, corpus.IsNotFound(err))
}

func TestPostgresRepository_AddConversation(t *testing.T) {
	repo := importedPostgres(t)
	ctx := context.Background()

	id, err := repo.AddConversation(ctx, biancaAndBruce("testing the api"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)

	cv, err := repo.GetConversation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []models.TranscriptLine{{CharacterName: "BIANCA", Line: "testing the api"}}, cv.Lines)

	line, err := repo.GetLine(ctx, 82)
	require.NoError(t, err)
	assert.Equal(t, "BRUCE", line.SpokenTo)

	_, err = repo.AddConversation(ctx, models.NewConversation{MovieID: 0, Character1ID: 0, Character2ID: 7})
	assert.Equal(t, corpus.KindNotFound, corpus.KindOf(err))
	assert.Contains(t, err.Error(), "character 2")

	_, err = repo.AddConversation(ctx, models.NewConversation{
		MovieID: 0, Character1ID: 0, Character2ID: 1,
		Lines: []models.NewLine{{CharacterID: 2, Text: "intruder"}},
	})
	assert.Equal(t, corpus.KindInvalidArgument, corpus.KindOf(err))

	status, err := repo.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, status.Conversations)
	require.NotNil(t, status.LastImport)
	assert.Equal(t, "fixture", status.LastImport.Source)
}

func TestPostgresRepository_DuplicateIDIsConflict(t *testing.T) {
	repo := importedPostgres(t)
	ctx := context.Background()

	require.NoError(t, repo.db.WithContext(ctx).Create(&models.Conversation{ID: 8, Character1ID: 0, Character2ID: 1, MovieID: 0}).Error)

	_, err := repo.AddConversation(ctx, biancaAndBruce("collides"))
	require.Error(t, err)
	assert.Equal(t, corpus.KindConflict, corpus.KindOf(err))
}
