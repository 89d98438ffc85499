package services

import (
	"context"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/models"
	"corpus-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// ListOptions carries the raw listing parameters received at the API boundary.
// Sort is the public enum name; an empty Sort selects the default order.
type ListOptions struct {
	Name   string
	Sort   string
	Limit  int
	Offset int
}

type LineOptions struct {
	Character string
	Movie     string
	Limit     int
	Offset    int
}

type CorpusService interface {
	GetMovie(ctx context.Context, id int64) (*models.MovieDetail, error)
	ListMovies(ctx context.Context, opts ListOptions) ([]models.MovieSummary, error)

	GetCharacter(ctx context.Context, id int64) (*models.CharacterDetail, error)
	ListCharacters(ctx context.Context, opts ListOptions) ([]models.CharacterSummary, error)

	GetConversation(ctx context.Context, id int64) (*models.ConversationTranscript, error)
	AddConversation(ctx context.Context, nc models.NewConversation) (int64, error)

	GetLine(ctx context.Context, id int64) (*models.LineDetail, error)
	ListLines(ctx context.Context, opts LineOptions) ([]models.LineSummary, error)

	GetSyncStatus(ctx context.Context) (*models.SyncStatus, error)
	HealthCheck(ctx context.Context) error
}

type corpusService struct {
	repo   repository.CorpusRepository
	logger *logrus.Logger
}

func NewCorpusService(repo repository.CorpusRepository, logger *logrus.Logger) CorpusService {
	return &corpusService{
		repo:   repo,
		logger: logger,
	}
}

func (s *corpusService) GetMovie(ctx context.Context, id int64) (*models.MovieDetail, error) {
	movie, err := s.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, s.logFailure(err, "get movie", logrus.Fields{"movie_id": id})
	}
	return movie, nil
}

func (s *corpusService) ListMovies(ctx context.Context, opts ListOptions) ([]models.MovieSummary, error) {
	sort, err := corpus.ParseMovieSort(opts.Sort)
	if err != nil {
		return nil, err
	}
	page, err := pageOf(opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}

	movies, err := s.repo.ListMovies(ctx, repository.MovieQuery{Name: opts.Name, Sort: sort, Page: page})
	if err != nil {
		return nil, s.logFailure(err, "list movies", logrus.Fields{"name": opts.Name, "sort": opts.Sort})
	}
	return movies, nil
}

func (s *corpusService) GetCharacter(ctx context.Context, id int64) (*models.CharacterDetail, error) {
	character, err := s.repo.GetCharacter(ctx, id)
	if err != nil {
		return nil, s.logFailure(err, "get character", logrus.Fields{"character_id": id})
	}
	return character, nil
}

func (s *corpusService) ListCharacters(ctx context.Context, opts ListOptions) ([]models.CharacterSummary, error) {
	sort, err := corpus.ParseCharacterSort(opts.Sort)
	if err != nil {
		return nil, err
	}
	page, err := pageOf(opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}

	characters, err := s.repo.ListCharacters(ctx, repository.CharacterQuery{Name: opts.Name, Sort: sort, Page: page})
	if err != nil {
		return nil, s.logFailure(err, "list characters", logrus.Fields{"name": opts.Name, "sort": opts.Sort})
	}
	return characters, nil
}

func (s *corpusService) GetConversation(ctx context.Context, id int64) (*models.ConversationTranscript, error) {
	conversation, err := s.repo.GetConversation(ctx, id)
	if err != nil {
		return nil, s.logFailure(err, "get conversation", logrus.Fields{"conversation_id": id})
	}
	return conversation, nil
}

func (s *corpusService) AddConversation(ctx context.Context, nc models.NewConversation) (int64, error) {
	id, err := s.repo.AddConversation(ctx, nc)
	if err != nil {
		return 0, s.logFailure(err, "add conversation", logrus.Fields{
			"movie_id":       nc.MovieID,
			"character_1_id": nc.Character1ID,
			"character_2_id": nc.Character2ID,
		})
	}
	return id, nil
}

func (s *corpusService) GetLine(ctx context.Context, id int64) (*models.LineDetail, error) {
	line, err := s.repo.GetLine(ctx, id)
	if err != nil {
		return nil, s.logFailure(err, "get line", logrus.Fields{"line_id": id})
	}
	return line, nil
}

func (s *corpusService) ListLines(ctx context.Context, opts LineOptions) ([]models.LineSummary, error) {
	page, err := pageOf(opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.ListLines(ctx, repository.LineQuery{Character: opts.Character, Movie: opts.Movie, Page: page})
	if err != nil {
		return nil, s.logFailure(err, "list lines", logrus.Fields{"character": opts.Character, "movie": opts.Movie})
	}
	return lines, nil
}

func (s *corpusService) GetSyncStatus(ctx context.Context) (*models.SyncStatus, error) {
	status, err := s.repo.Status(ctx)
	if err != nil {
		return nil, s.logFailure(err, "get sync status", nil)
	}
	return status, nil
}

func (s *corpusService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// pageOf returns the page for a listing. A zero limit selects DefaultLimit.
func pageOf(limit, offset int) (corpus.Page, error) {
	if limit == 0 {
		limit = corpus.DefaultLimit
	}
	page := corpus.Page{Limit: limit, Offset: offset}
	if err := page.Validate(); err != nil {
		return corpus.Page{}, err
	}
	return page, nil
}

// logFailure logs err at a level matching its kind and returns it unchanged.
// Client errors are only worth a debug line.
func (s *corpusService) logFailure(err error, op string, fields logrus.Fields) error {
	entry := s.logger.WithError(err).WithFields(fields).WithField("kind", corpus.KindOf(err))
	switch corpus.KindOf(err) {
	case corpus.KindNotFound, corpus.KindInvalidArgument:
		entry.Debugf("Failed to %s", op)
	default:
		entry.Errorf("Failed to %s", op)
	}
	return err
}
