package repository

import (
	"context"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/models"
)

type MovieQuery struct {
	Name string
	Sort corpus.MovieSort
	Page corpus.Page
}

type CharacterQuery struct {
	Name string
	Sort corpus.CharacterSort
	Page corpus.Page
}

type LineQuery struct {
	Character string
	Movie     string
	Page      corpus.Page
}

// CorpusRepository is implemented by every corpus backend. Both backends
// return identical results for identical data; errors are *corpus.Error.
type CorpusRepository interface {
	GetMovie(ctx context.Context, id int64) (*models.MovieDetail, error)
	ListMovies(ctx context.Context, q MovieQuery) ([]models.MovieSummary, error)
	GetCharacter(ctx context.Context, id int64) (*models.CharacterDetail, error)
	ListCharacters(ctx context.Context, q CharacterQuery) ([]models.CharacterSummary, error)
	GetConversation(ctx context.Context, id int64) (*models.ConversationTranscript, error)
	GetLine(ctx context.Context, id int64) (*models.LineDetail, error)
	ListLines(ctx context.Context, q LineQuery) ([]models.LineSummary, error)

	// AddConversation validates and stores a new conversation and returns its id.
	AddConversation(ctx context.Context, nc models.NewConversation) (int64, error)

	Status(ctx context.Context) (*models.SyncStatus, error)
	HealthCheck(ctx context.Context) error
}
