package services_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/corpus/corpustest"
	"corpus-backend/internal/models"
	"corpus-backend/internal/repository"
	"corpus-backend/internal/services"
	"corpus-backend/internal/storage"
)

func newService(t *testing.T) services.CorpusService {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	source := storage.NewSource(storage.NewMemoryStore(nil), log)
	_, err := source.WriteAll(context.Background(), corpustest.Records())
	require.NoError(t, err)

	repo := repository.NewGraphRepository(source, 0, log)
	require.NoError(t, repo.Reload(context.Background()))
	return services.NewCorpusService(repo, log)
}

func TestCorpusService_ListDefaults(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	lines, err := svc.ListLines(ctx, services.LineOptions{})
	require.NoError(t, err)
	assert.Len(t, lines, 19)

	movies, err := svc.ListMovies(ctx, services.ListOptions{})
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, "10 things i hate about you", movies[0].MovieTitle)

	characters, err := svc.ListCharacters(ctx, services.ListOptions{Sort: "number_of_lines", Limit: 1})
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Equal(t, "CAMERON", characters[0].Character)
}

func TestCorpusService_RejectsBadListings(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"unknown movie sort", func() error {
			_, err := svc.ListMovies(ctx, services.ListOptions{Sort: "popularity"})
			return err
		}},
		{"unknown character sort", func() error {
			_, err := svc.ListCharacters(ctx, services.ListOptions{Sort: "age"})
			return err
		}},
		{"limit above max", func() error {
			_, err := svc.ListMovies(ctx, services.ListOptions{Limit: corpus.MaxLimit + 1})
			return err
		}},
		{"negative limit", func() error {
			_, err := svc.ListLines(ctx, services.LineOptions{Limit: -1})
			return err
		}},
		{"negative offset", func() error {
			_, err := svc.ListCharacters(ctx, services.ListOptions{Offset: -5})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, corpus.KindInvalidArgument, corpus.KindOf(err))
		})
	}
}

func TestCorpusService_AddConversation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	id, err := svc.AddConversation(ctx, models.NewConversation{
		MovieID:      0,
		Character1ID: 0,
		Character2ID: 1,
		Lines:        []models.NewLine{{CharacterID: 0, Text: "testing the api"}},
	})
	require.NoError(t, err)

	cv, err := svc.GetConversation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "10 things i hate about you", cv.MovieTitle)
	assert.Equal(t, []models.TranscriptLine{{CharacterName: "BIANCA", Line: "testing the api"}}, cv.Lines)

	status, err := svc.GetSyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, status.Conversations)
	assert.NoError(t, svc.HealthCheck(ctx))
}
