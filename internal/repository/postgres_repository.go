package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/database"
	"corpus-backend/internal/metrics"
	"corpus-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// Byte-wise collation keeps text ordering identical to the in-memory backend.
var movieOrder = map[corpus.MovieSort]string{
	corpus.MovieSortTitle:  `title COLLATE "C" ASC, movie_id ASC`,
	corpus.MovieSortYear:   `year COLLATE "C" ASC, movie_id ASC`,
	corpus.MovieSortRating: `imdb_rating DESC NULLS LAST, movie_id ASC`,
}

var characterOrder = map[corpus.CharacterSort]string{
	corpus.CharacterSortName:  `c.name COLLATE "C" ASC, c.character_id ASC`,
	corpus.CharacterSortMovie: `m.title COLLATE "C" ASC, c.character_id ASC`,
	corpus.CharacterSortLines: `number_of_lines DESC, c.character_id ASC`,
}

// PostgresRepository answers the corpus contract with SQL over gorm.
type PostgresRepository struct {
	db      *database.Database
	timeout time.Duration
	logger  *logrus.Logger
}

func NewPostgresRepository(db *database.Database, logger *logrus.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
		logger:  logger,
	}
}

func (r *PostgresRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepository) GetMovie(ctx context.Context, id int64) (*models.MovieDetail, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	db := r.db.WithContext(ctx)

	var movie models.Movie
	if err := db.Select("movie_id", "title").First(&movie, "movie_id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "movie not found")
	}

	top := make([]models.TopCharacter, 0, 5)
	err := db.Table("characters AS c").
		Select("c.character_id, c.name AS character, COUNT(l.line_id) AS num_lines").
		Joins("LEFT JOIN lines AS l ON l.character_id = c.character_id").
		Where("c.movie_id = ?", id).
		Group("c.character_id, c.name").
		Order("num_lines DESC, c.character_id ASC").
		Limit(5).
		Scan(&top).Error
	if err != nil {
		return nil, queryError(err)
	}

	return &models.MovieDetail{
		MovieID:       movie.ID,
		Title:         movie.Title,
		TopCharacters: top,
	}, nil
}

func (r *PostgresRepository) ListMovies(ctx context.Context, q MovieQuery) ([]models.MovieSummary, error) {
	if err := q.Page.Validate(); err != nil {
		return nil, err
	}
	order, ok := movieOrder[q.Sort]
	if !ok {
		return nil, corpus.InvalidArgument("invalid movie sort %d", q.Sort)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Movie{}).
		Select("movie_id, title AS movie_title, year, imdb_rating, imdb_votes")
	if q.Name != "" {
		query = query.Where("title ILIKE ?", likePattern(q.Name))
	}

	out := make([]models.MovieSummary, 0, q.Page.Limit)
	err := query.Order(order).Limit(q.Page.Limit).Offset(q.Page.Offset).Scan(&out).Error
	if err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

func (r *PostgresRepository) GetCharacter(ctx context.Context, id int64) (*models.CharacterDetail, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	db := r.db.WithContext(ctx)

	var character struct {
		CharacterID int64
		Character   string
		Movie       string
		Gender      string
	}
	res := db.Table("characters AS c").
		Select("c.character_id, c.name AS character, m.title AS movie, c.gender").
		Joins("JOIN movies AS m ON m.movie_id = c.movie_id").
		Where("c.character_id = ?", id).
		Limit(1).
		Scan(&character)
	if res.Error != nil {
		return nil, queryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, corpus.NotFound("character not found")
	}

	// Every line of every shared conversation counts, including zero-line
	// conversations that still name the pair.
	partners := make([]models.ConversationPartner, 0)
	err := db.Raw(`
		SELECT other.character_id, other.name AS character, other.gender,
		       COUNT(l.line_id) AS number_of_lines_together
		FROM conversations AS cv
		JOIN characters AS other
		  ON other.character_id = CASE WHEN cv.character1_id = @id THEN cv.character2_id ELSE cv.character1_id END
		LEFT JOIN lines AS l ON l.conversation_id = cv.conversation_id
		WHERE cv.character1_id = @id OR cv.character2_id = @id
		GROUP BY other.character_id, other.name, other.gender
		ORDER BY number_of_lines_together DESC, other.character_id ASC`,
		map[string]any{"id": id},
	).Scan(&partners).Error
	if err != nil {
		return nil, queryError(err)
	}

	return &models.CharacterDetail{
		CharacterID:      character.CharacterID,
		Character:        character.Character,
		Movie:            character.Movie,
		Gender:           character.Gender,
		TopConversations: partners,
	}, nil
}

func (r *PostgresRepository) ListCharacters(ctx context.Context, q CharacterQuery) ([]models.CharacterSummary, error) {
	if err := q.Page.Validate(); err != nil {
		return nil, err
	}
	order, ok := characterOrder[q.Sort]
	if !ok {
		return nil, corpus.InvalidArgument("invalid character sort %d", q.Sort)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Table("characters AS c").
		Select("c.character_id, c.name AS character, m.title AS movie, COUNT(l.line_id) AS number_of_lines").
		Joins("JOIN movies AS m ON m.movie_id = c.movie_id").
		Joins("LEFT JOIN lines AS l ON l.character_id = c.character_id")
	if q.Name != "" {
		query = query.Where("c.name ILIKE ?", likePattern(q.Name))
	}

	out := make([]models.CharacterSummary, 0, q.Page.Limit)
	err := query.Group("c.character_id, c.name, m.title").
		Order(order).
		Limit(q.Page.Limit).
		Offset(q.Page.Offset).
		Scan(&out).Error
	if err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

func (r *PostgresRepository) GetConversation(ctx context.Context, id int64) (*models.ConversationTranscript, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	db := r.db.WithContext(ctx)

	var head struct {
		ConversationID int64
		MovieID        int64
		MovieTitle     string
	}
	res := db.Table("conversations AS cv").
		Select("cv.conversation_id, cv.movie_id, m.title AS movie_title").
		Joins("JOIN movies AS m ON m.movie_id = cv.movie_id").
		Where("cv.conversation_id = ?", id).
		Limit(1).
		Scan(&head)
	if res.Error != nil {
		return nil, queryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, corpus.NotFound("conversation not found")
	}

	lines := make([]models.TranscriptLine, 0)
	err := db.Table("lines AS l").
		Select("c.name AS character_name, l.line_text AS line").
		Joins("JOIN characters AS c ON c.character_id = l.character_id").
		Where("l.conversation_id = ?", id).
		Order("l.line_sort ASC, l.line_id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, queryError(err)
	}

	return &models.ConversationTranscript{
		ConversationID: head.ConversationID,
		MovieID:        head.MovieID,
		MovieTitle:     head.MovieTitle,
		Lines:          lines,
	}, nil
}

func (r *PostgresRepository) GetLine(ctx context.Context, id int64) (*models.LineDetail, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var line models.LineDetail
	res := r.db.WithContext(ctx).Table("lines AS l").
		Select("l.line_id, m.title AS movie, speaker.name AS spoken_by, listener.name AS spoken_to, l.conversation_id, l.line_text AS line").
		Joins("JOIN movies AS m ON m.movie_id = l.movie_id").
		Joins("JOIN characters AS speaker ON speaker.character_id = l.character_id").
		Joins("JOIN conversations AS cv ON cv.conversation_id = l.conversation_id").
		Joins("JOIN characters AS listener ON listener.character_id = CASE WHEN cv.character2_id = l.character_id THEN cv.character1_id ELSE cv.character2_id END").
		Where("l.line_id = ?", id).
		Limit(1).
		Scan(&line)
	if res.Error != nil {
		return nil, queryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, corpus.NotFound("line not found")
	}
	return &line, nil
}

func (r *PostgresRepository) ListLines(ctx context.Context, q LineQuery) ([]models.LineSummary, error) {
	if err := q.Page.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Table("lines AS l").
		Select("l.line_id, m.title AS movie_title, c.name AS character_name, l.line_text AS line").
		Joins("JOIN characters AS c ON c.character_id = l.character_id").
		Joins("JOIN movies AS m ON m.movie_id = l.movie_id")
	if q.Character != "" {
		query = query.Where("c.name ILIKE ?", likePattern(q.Character))
	}
	if q.Movie != "" {
		query = query.Where("m.title ILIKE ?", likePattern(q.Movie))
	}

	out := make([]models.LineSummary, 0, q.Page.Limit)
	err := query.Order("l.conversation_id ASC, l.line_sort ASC, l.line_id ASC").
		Limit(q.Page.Limit).
		Offset(q.Page.Offset).
		Scan(&out).Error
	if err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

// AddConversation runs every check and both inserts in one transaction. Ids
// come from sequences, so concurrent writers never share one.
func (r *PostgresRepository) AddConversation(ctx context.Context, nc models.NewConversation) (id int64, err error) {
	defer func() { metrics.RecordWrite("postgres", err) }()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var conv models.Conversation
	var lines []models.Line
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkNewConversation(tx, nc); err != nil {
			return err
		}

		conv = models.Conversation{
			Character1ID: nc.Character1ID,
			Character2ID: nc.Character2ID,
			MovieID:      nc.MovieID,
		}
		if err := tx.Raw("SELECT nextval(?)", database.ConversationIDSequence).Scan(&conv.ID).Error; err != nil {
			return err
		}
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}

		if len(nc.Lines) == 0 {
			return nil
		}

		var ids []int64
		err := tx.Raw("SELECT nextval(?) FROM generate_series(1, ?)", database.LineIDSequence, len(nc.Lines)).
			Scan(&ids).Error
		if err != nil {
			return err
		}
		slices.Sort(ids)

		lines = make([]models.Line, len(nc.Lines))
		for i, l := range nc.Lines {
			lines[i] = models.Line{
				ID:             ids[i],
				CharacterID:    l.CharacterID,
				MovieID:        nc.MovieID,
				ConversationID: conv.ID,
				LineSort:       i,
				LineText:       l.Text,
			}
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return 0, writeError(err)
	}

	r.logger.WithFields(logrus.Fields{
		"conversation_id": conv.ID,
		"movie_id":        conv.MovieID,
		"lines":           len(lines),
	}).Info("Conversation created")
	return conv.ID, nil
}

func checkNewConversation(tx *gorm.DB, nc models.NewConversation) error {
	var n int64
	if err := tx.Model(&models.Movie{}).Where("movie_id = ?", nc.MovieID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return corpus.NotFound("movie not found")
	}

	for i, cid := range []int64{nc.Character1ID, nc.Character2ID} {
		err := tx.Model(&models.Character{}).
			Where("character_id = ? AND movie_id = ?", cid, nc.MovieID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n == 0 {
			return corpus.NotFound("character %d not found", i+1)
		}
	}

	if nc.Character1ID == nc.Character2ID {
		return corpus.InvalidArgument("character 1 and character 2 must be different")
	}
	for i, l := range nc.Lines {
		if l.CharacterID != nc.Character1ID && l.CharacterID != nc.Character2ID {
			return corpus.InvalidArgument("line %d is spoken by character %d who is not in the conversation", i, l.CharacterID)
		}
	}
	return nil
}

func (r *PostgresRepository) Status(ctx context.Context) (*models.SyncStatus, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	db := r.db.WithContext(ctx)

	status := &models.SyncStatus{Backend: "postgres"}
	counts := []struct {
		model any
		dest  *int
	}{
		{&models.Movie{}, &status.Movies},
		{&models.Character{}, &status.Characters},
		{&models.Conversation{}, &status.Conversations},
		{&models.Line{}, &status.Lines},
	}
	for _, c := range counts {
		var n int64
		if err := db.Model(c.model).Count(&n).Error; err != nil {
			return nil, queryError(err)
		}
		*c.dest = int(n)
	}

	last, err := r.GetLastSyncLog(ctx)
	if err != nil && !corpus.IsNotFound(err) {
		return nil, err
	}
	if last != nil {
		status.LastImport = last
		status.LastSyncedAt = &last.SyncedAt
		status.Marker = last.SyncedAt.UnixNano()
	}
	return status, nil
}

func (r *PostgresRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func (r *PostgresRepository) GetLastSyncLog(ctx context.Context) (*models.SyncLog, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var log models.SyncLog
	if err := r.db.WithContext(ctx).Order("created_at DESC").First(&log).Error; err != nil {
		return nil, notFoundOr(err, "no import recorded")
	}
	return &log, nil
}

func (r *PostgresRepository) CreateSyncLog(ctx context.Context, log *models.SyncLog) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(log).Error
}

// likePattern builds a case-insensitive containment pattern with LIKE
// metacharacters in s escaped.
func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return corpus.NotFound("%s", message)
	}
	return queryError(err)
}

func queryError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return corpus.Unavailable("database query timed out", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &corpus.Error{Kind: corpus.KindInternal, Message: fmt.Sprintf("database error %s", pgErr.Code), Err: err}
	}
	return corpus.Unavailable("database query failed", err)
}

func writeError(err error) error {
	if corpus.KindOf(err) != corpus.KindInternal {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return corpus.Conflict("conversation id already taken", err)
	}
	return queryError(err)
}
