package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// Source reads and writes the CSV form of the corpus through an ObjectStore.
type Source struct {
	store  ObjectStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewSource(store ObjectStore, logger *logrus.Logger) *Source {
	return &Source{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the four tables together with the marker they were published
// under. The marker is read first, so a write racing the load makes the
// returned marker stale rather than newer than the data.
func (s *Source) Load(ctx context.Context) (*corpus.Records, int64, error) {
	marker, err := s.Marker(ctx)
	if err != nil {
		return nil, 0, err
	}

	var r corpus.Records
	steps := []struct {
		name   string
		decode func([]byte) error
	}{
		{MoviesObject, func(b []byte) (err error) { r.Movies, err = DecodeMovies(b); return }},
		{CharactersObject, func(b []byte) (err error) { r.Characters, err = DecodeCharacters(b); return }},
		{ConversationsObject, func(b []byte) (err error) { r.Conversations, err = DecodeConversations(b); return }},
		{LinesObject, func(b []byte) (err error) { r.Lines, err = DecodeLines(b); return }},
	}
	for _, step := range steps {
		data, err := s.store.Get(ctx, step.name)
		if errors.Is(err, ErrObjectNotFound) {
			return nil, 0, corpus.Unavailable("corpus is incomplete", fmt.Errorf("%s: %w", step.name, err))
		}
		if err != nil {
			return nil, 0, err
		}
		if err := step.decode(data); err != nil {
			return nil, 0, err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"marker":        marker,
		"movies":        len(r.Movies),
		"characters":    len(r.Characters),
		"conversations": len(r.Conversations),
		"lines":         len(r.Lines),
	}).Info("Corpus files loaded")

	return &r, marker, nil
}

// Marker returns the published update marker, or 0 if none was published.
func (s *Source) Marker(ctx context.Context) (int64, error) {
	data, err := s.store.Get(ctx, MarkerObject)
	if errors.Is(err, ErrObjectNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return 0, nil
	}
	marker, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid marker %q: %w", raw, err)
	}
	return marker, nil
}

// Touch publishes a new marker and returns it. The marker is the current time
// in nanoseconds, bumped past the previous marker if the clock lags it.
func (s *Source) Touch(ctx context.Context) (int64, error) {
	previous, err := s.Marker(ctx)
	if err != nil {
		return 0, err
	}

	marker := max(s.now().UnixNano(), previous+1)
	if err := s.store.Put(ctx, MarkerObject, []byte(strconv.FormatInt(marker, 10))); err != nil {
		return 0, fmt.Errorf("failed to publish marker: %w", err)
	}
	return marker, nil
}

// AppendConversation appends conv and its lines to the stored tables and
// publishes a new marker, which it returns. If the lines table cannot be
// written, the conversations table is restored to its previous contents.
func (s *Source) AppendConversation(ctx context.Context, conv models.Conversation, lines []models.Line) (int64, error) {
	conversationsDoc, err := s.getOr(ctx, ConversationsObject, conversationColumns)
	if err != nil {
		return 0, err
	}
	linesDoc, err := s.getOr(ctx, LinesObject, lineColumns)
	if err != nil {
		return 0, err
	}

	nextConversations, err := appendRows(conversationsDoc, conversationRows([]models.Conversation{conv}))
	if err != nil {
		return 0, fmt.Errorf("failed to encode conversation: %w", err)
	}
	nextLines, err := appendRows(linesDoc, lineRows(lines))
	if err != nil {
		return 0, fmt.Errorf("failed to encode lines: %w", err)
	}

	if err := s.store.Put(ctx, ConversationsObject, nextConversations); err != nil {
		return 0, fmt.Errorf("failed to persist conversation: %w", err)
	}
	if err := s.store.Put(ctx, LinesObject, nextLines); err != nil {
		// The request context may be what failed; restore regardless of it.
		restoreCtx := context.WithoutCancel(ctx)
		if rerr := s.store.Put(restoreCtx, ConversationsObject, conversationsDoc); rerr != nil {
			s.logger.WithError(rerr).WithField("conversation_id", conv.ID).Error("Failed to restore conversations after lines write failed")
		}
		return 0, fmt.Errorf("failed to persist lines: %w", err)
	}

	marker, err := s.Touch(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"conversation_id": conv.ID,
		"lines":           len(lines),
		"marker":          marker,
	}).Info("Conversation persisted")
	return marker, nil
}

// WriteAll replaces every table with records and publishes a new marker.
func (s *Source) WriteAll(ctx context.Context, r *corpus.Records) (int64, error) {
	tables := []struct {
		name   string
		encode func() ([]byte, error)
	}{
		{MoviesObject, func() ([]byte, error) { return EncodeMovies(r.Movies) }},
		{CharactersObject, func() ([]byte, error) { return EncodeCharacters(r.Characters) }},
		{ConversationsObject, func() ([]byte, error) { return EncodeConversations(r.Conversations) }},
		{LinesObject, func() ([]byte, error) { return EncodeLines(r.Lines) }},
	}
	for _, t := range tables {
		data, err := t.encode()
		if err != nil {
			return 0, fmt.Errorf("failed to encode %s: %w", t.name, err)
		}
		if err := s.store.Put(ctx, t.name, data); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", t.name, err)
		}
	}
	return s.Touch(ctx)
}

// getOr returns the named table, or a header-only document if it is missing.
func (s *Source) getOr(ctx context.Context, name string, columns []string) ([]byte, error) {
	data, err := s.store.Get(ctx, name)
	if errors.Is(err, ErrObjectNotFound) {
		return encode(columns, nil)
	}
	return data, err
}
