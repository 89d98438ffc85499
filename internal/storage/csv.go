package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/models"
)

var (
	movieColumns        = []string{"movie_id", "title", "year", "imdb_rating", "imdb_votes", "raw_script_url"}
	characterColumns    = []string{"character_id", "name", "movie_id", "gender", "age"}
	conversationColumns = []string{"conversation_id", "character1_id", "character2_id", "movie_id"}
	lineColumns         = []string{"line_id", "character_id", "movie_id", "conversation_id", "line_sort", "line_text"}
)

// row gives access to one CSV record by column name. The first failed
// required-field parse is kept in err.
type row struct {
	table  string
	number int
	index  map[string]int
	fields []string
	err    error
}

func (r *row) str(column string) string {
	return r.fields[r.index[column]]
}

func (r *row) id(column string) int64 {
	raw := r.str(column)
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil && r.err == nil {
		r.err = corpus.InvalidArgument("%s row %d: invalid %s %q", r.table, r.number, column, raw)
	}
	return v
}

func (r *row) integer(column string) int {
	return int(r.id(column))
}

// Optional numeric cells that are blank or unparsable load as absent.

func (r *row) optFloat(column string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.str(column)), 64)
	if err != nil {
		return nil
	}
	return &v
}

func (r *row) optInt64(column string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.str(column)), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (r *row) optInt(column string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(r.str(column)))
	if err != nil {
		return nil
	}
	return &v
}

// decode reads a headered CSV document and calls fn for every record. Columns
// are matched by header name, so their order in the file is free.
func decode(table string, data []byte, columns []string, fn func(r *row)) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return corpus.InvalidArgument("%s: missing header row", table)
	}
	if err != nil {
		return corpus.InvalidArgument("%s: %v", table, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return corpus.InvalidArgument("%s: missing column %q", table, c)
		}
	}

	for number := 1; ; number++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return corpus.InvalidArgument("%s: %v", table, err)
		}
		if len(fields) < len(header) {
			return corpus.InvalidArgument("%s row %d: expected %d fields, got %d", table, number, len(header), len(fields))
		}

		r := &row{table: table, number: number, index: index, fields: fields}
		fn(r)
		if r.err != nil {
			return r.err
		}
	}
}

func DecodeMovies(data []byte) ([]models.Movie, error) {
	var out []models.Movie
	err := decode(MoviesObject, data, movieColumns, func(r *row) {
		out = append(out, models.Movie{
			ID:           r.id("movie_id"),
			Title:        r.str("title"),
			Year:         r.str("year"),
			IMDBRating:   r.optFloat("imdb_rating"),
			IMDBVotes:    r.optInt64("imdb_votes"),
			RawScriptURL: r.str("raw_script_url"),
		})
	})
	return out, err
}

func DecodeCharacters(data []byte) ([]models.Character, error) {
	var out []models.Character
	err := decode(CharactersObject, data, characterColumns, func(r *row) {
		out = append(out, models.Character{
			ID:      r.id("character_id"),
			Name:    r.str("name"),
			MovieID: r.id("movie_id"),
			Gender:  r.str("gender"),
			Age:     r.optInt("age"),
		})
	})
	return out, err
}

func DecodeConversations(data []byte) ([]models.Conversation, error) {
	var out []models.Conversation
	err := decode(ConversationsObject, data, conversationColumns, func(r *row) {
		out = append(out, models.Conversation{
			ID:           r.id("conversation_id"),
			Character1ID: r.id("character1_id"),
			Character2ID: r.id("character2_id"),
			MovieID:      r.id("movie_id"),
		})
	})
	return out, err
}

func DecodeLines(data []byte) ([]models.Line, error) {
	var out []models.Line
	err := decode(LinesObject, data, lineColumns, func(r *row) {
		out = append(out, models.Line{
			ID:             r.id("line_id"),
			CharacterID:    r.id("character_id"),
			MovieID:        r.id("movie_id"),
			ConversationID: r.id("conversation_id"),
			LineSort:       r.integer("line_sort"),
			LineText:       r.str("line_text"),
		})
	})
	return out, err
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func optString[T any](v *T) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if header != nil {
		if err := w.Write(header); err != nil {
			return nil, err
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func EncodeMovies(movies []models.Movie) ([]byte, error) {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{itoa(m.ID), m.Title, m.Year, optString(m.IMDBRating), optString(m.IMDBVotes), m.RawScriptURL})
	}
	return encode(movieColumns, rows)
}

func EncodeCharacters(characters []models.Character) ([]byte, error) {
	rows := make([][]string, 0, len(characters))
	for _, c := range characters {
		rows = append(rows, []string{itoa(c.ID), c.Name, itoa(c.MovieID), c.Gender, optString(c.Age)})
	}
	return encode(characterColumns, rows)
}

func conversationRows(conversations []models.Conversation) [][]string {
	rows := make([][]string, 0, len(conversations))
	for _, cv := range conversations {
		rows = append(rows, []string{itoa(cv.ID), itoa(cv.Character1ID), itoa(cv.Character2ID), itoa(cv.MovieID)})
	}
	return rows
}

func lineRows(lines []models.Line) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{itoa(l.ID), itoa(l.CharacterID), itoa(l.MovieID), itoa(l.ConversationID), strconv.Itoa(l.LineSort), l.LineText})
	}
	return rows
}

func EncodeConversations(conversations []models.Conversation) ([]byte, error) {
	return encode(conversationColumns, conversationRows(conversations))
}

func EncodeLines(lines []models.Line) ([]byte, error) {
	return encode(lineColumns, lineRows(lines))
}

// appendRows returns doc followed by rows, encoded without a header. A missing
// trailing newline on doc is repaired first.
func appendRows(doc []byte, rows [][]string) ([]byte, error) {
	body, err := encode(nil, rows)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(doc)+1+len(body))
	out = append(out, doc...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return append(out, body...), nil
}
