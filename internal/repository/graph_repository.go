package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/metrics"
	"corpus-backend/internal/models"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// CorpusSource is the persisted form of the corpus behind a GraphRepository.
type CorpusSource interface {
	Load(ctx context.Context) (*corpus.Records, int64, error)
	Marker(ctx context.Context) (int64, error)
	AppendConversation(ctx context.Context, conv models.Conversation, lines []models.Line) (int64, error)
}

type snapshot struct {
	graph    *corpus.Graph
	marker   int64
	loadedAt time.Time
}

// GraphRepository serves the corpus from an immutable in-memory graph.
//
// Reads never lock: they load the current snapshot through an atomic pointer.
// Writes and reloads are serialized by mu and publish a whole new snapshot.
type GraphRepository struct {
	source  CorpusSource
	current atomic.Pointer[snapshot]
	mu      sync.Mutex

	reloadGroup   singleflight.Group
	markers       *cache.Cache
	checkInterval time.Duration
	reloads       atomic.Int64

	logger *logrus.Logger
}

func NewGraphRepository(source CorpusSource, checkInterval time.Duration, logger *logrus.Logger) *GraphRepository {
	return &GraphRepository{
		source:        source,
		markers:       cache.New(checkInterval, 2*checkInterval+time.Minute),
		checkInterval: checkInterval,
		logger:        logger,
	}
}

// Reload unconditionally rebuilds the graph from the source.
func (r *GraphRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.reloadLocked(ctx)
	return err
}

func (r *GraphRepository) GetMovie(ctx context.Context, id int64) (*models.MovieDetail, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.graph.GetMovie(id)
}

func (r *GraphRepository) ListMovies(ctx context.Context, q MovieQuery) ([]models.MovieSummary, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.graph.ListMovies(q.Name, q.Sort, q.Page)
}

func (r *GraphRepository) GetCharacter(ctx context.Context, id int64) (*models.CharacterDetail, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.graph.GetCharacter(id)
}

func (r *GraphRepository) ListCharacters(ctx context.Context, q CharacterQuery) ([]models.CharacterSummary, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.graph.ListCharacters(q.Name, q.Sort, q.Page)
}

func (r *GraphRepository) GetConversation(ctx context.Context, id int64) (*models.ConversationTranscript, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.graph.GetConversation(id)
}

func (r *GraphRepository) GetLine(ctx context.Context, id int64) (*models.LineDetail, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.graph.GetLine(id)
}

func (r *GraphRepository) ListLines(ctx context.Context, q LineQuery) ([]models.LineSummary, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.graph.ListLines(q.Character, q.Movie, q.Page)
}

// AddConversation validates nc against the freshest graph, persists it and
// publishes the extended graph. Nothing is published if persisting fails.
func (r *GraphRepository) AddConversation(ctx context.Context, nc models.NewConversation) (id int64, err error) {
	defer func() { metrics.RecordWrite("memory", err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.freshLocked(ctx)
	if err != nil {
		return 0, err
	}

	conv, lines, err := cur.graph.PrepareConversation(nc)
	if err != nil {
		return 0, err
	}

	marker, err := r.source.AppendConversation(ctx, conv, lines)
	if err != nil {
		r.logger.WithError(err).WithField("movie_id", nc.MovieID).Error("Failed to persist conversation")
		return 0, asCorpusError(err, "failed to persist conversation")
	}

	r.publish(&snapshot{
		graph:    cur.graph.WithConversation(conv, lines),
		marker:   marker,
		loadedAt: cur.loadedAt,
	})

	r.logger.WithFields(logrus.Fields{
		"conversation_id": conv.ID,
		"movie_id":        conv.MovieID,
		"lines":           len(lines),
	}).Info("Conversation created")
	return conv.ID, nil
}

func (r *GraphRepository) Status(ctx context.Context) (*models.SyncStatus, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	counts := s.graph.Counts()
	loadedAt := s.loadedAt
	return &models.SyncStatus{
		Backend:       "memory",
		Marker:        s.marker,
		LastSyncedAt:  &loadedAt,
		Reloads:       r.reloads.Load(),
		Movies:        counts.Movies,
		Characters:    counts.Characters,
		Conversations: counts.Conversations,
		Lines:         counts.Lines,
	}, nil
}

func (r *GraphRepository) HealthCheck(ctx context.Context) error {
	if r.current.Load() == nil {
		return corpus.Unavailable("corpus not loaded", nil)
	}
	_, err := r.source.Marker(ctx)
	return err
}

func (r *GraphRepository) publish(s *snapshot) {
	r.current.Store(s)
	if r.checkInterval > 0 {
		r.markers.SetDefault(markerKey, s.marker)
	}
	counts := s.graph.Counts()
	metrics.RecordSnapshot(counts.Movies, counts.Characters, counts.Conversations, counts.Lines, s.marker)
}

// asCorpusError keeps corpus errors as they are and classifies anything else
// as internal.
func asCorpusError(err error, message string) error {
	if corpus.KindOf(err) != corpus.KindInternal {
		return err
	}
	return &corpus.Error{Kind: corpus.KindInternal, Message: message, Err: err}
}
