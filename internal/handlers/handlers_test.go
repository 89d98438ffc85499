package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-backend/internal/corpus/corpustest"
	"corpus-backend/internal/handlers"
	"corpus-backend/internal/repository"
	"corpus-backend/internal/routes"
	"corpus-backend/internal/services"
	"corpus-backend/internal/storage"
	"corpus-backend/internal/utils"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	source := storage.NewSource(storage.NewMemoryStore(nil), log)
	_, err := source.WriteAll(context.Background(), corpustest.Records())
	require.NoError(t, err)

	repo := repository.NewGraphRepository(source, 0, log)
	require.NoError(t, repo.Reload(context.Background()))
	svc := services.NewCorpusService(repo, log)

	app := fiber.New()
	routes.Setup(app,
		handlers.NewMovieHandler(svc, log),
		handlers.NewCharacterHandler(svc),
		handlers.NewLineHandler(svc),
		handlers.NewSyncHandler(svc),
	)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestGetLine_Golden(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodGet, "/lines/49", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"line_id": 49,
		"movie": "10 things i hate about you",
		"spoken_by": "CAMERON",
		"spoken_to": "BIANCA",
		"conversation_id": 1,
		"line": "You're asking me out. That's so cute."
	}`, body)
}

func TestGetCharacter_Golden(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodGet, "/characters/2", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"character_id": 2,
		"character": "CAMERON",
		"movie": "10 things i hate about you",
		"gender": "m",
		"top_conversations": [
			{"character_id": 0, "character": "BIANCA", "gender": "f", "number_of_lines_together": 6},
			{"character_id": 5, "character": "KAT", "gender": "f", "number_of_lines_together": 3},
			{"character_id": 3, "character": "CHASTITY", "gender": "f", "number_of_lines_together": 2}
		]
	}`, body)
}

func TestAddConversation_RoundTrip(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodPost, "/movies/0/conversations/", `{
		"character_1_id": 0,
		"character_2_id": 1,
		"lines": [{"character_id": 0, "line_text": "testing the api"}]
	}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "8", body)

	code, body = do(t, app, http.MethodGet, "/conversations/8", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"conversation_id": 8,
		"movie_id": 0,
		"movie_title": "10 things i hate about you",
		"lines": [{"character_name": "BIANCA", "line": "testing the api"}]
	}`, body)
}

func TestAddConversation_EmptyLines(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodPost, "/movies/0/conversations", `{"character_1_id": 0, "character_2_id": 1, "lines": []}`)
	require.Equal(t, http.StatusOK, code, body)

	code, body = do(t, app, http.MethodGet, "/conversations/"+body, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"lines":[]`)
}

func TestListings(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodGet, "/movies/?sort=rating&limit=1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"movie_id": 1, "movie_title": "watchmen", "year": "2009", "imdb_rating": 7.8, "imdb_votes": 135229}]`, body)

	code, body = do(t, app, http.MethodGet, "/characters?name=amy", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"character_id": 10, "character": "AMY", "movie": "zebra nights", "number_of_lines": 1}]`, body)

	code, body = do(t, app, http.MethodGet, "/lines/?character=rorschach", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"line_id": 70, "movie_title": "watchmen", "character_name": "RORSCHACH", "line": "Never compromise."}]`, body)

	code, body = do(t, app, http.MethodGet, "/movies/?name=zebra", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"movie_id": 2, "movie_title": "zebra nights", "year": "", "imdb_rating": null, "imdb_votes": null}]`, body)
}

func TestSyncStatus(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodGet, "/sync/status", "")
	require.Equal(t, http.StatusOK, code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Backend string `json:"backend"`
			Lines   int    `json:"lines"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "memory", resp.Data.Backend)
	assert.Equal(t, 19, resp.Data.Lines)
}

func TestErrors(t *testing.T) {
	const conversationsPath = "/movies/0/conversations/"

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantReason string
	}{
		{"non-numeric movie id", http.MethodGet, "/movies/abc", "", 400, "invalid_argument"},
		{"missing movie", http.MethodGet, "/movies/400", "", 404, "not_found"},
		{"missing character", http.MethodGet, "/characters/400", "", 404, "not_found"},
		{"missing conversation", http.MethodGet, "/conversations/400", "", 404, "not_found"},
		{"missing line", http.MethodGet, "/lines/400", "", 404, "not_found"},
		{"zero limit", http.MethodGet, "/movies/?limit=0", "", 400, "invalid_argument"},
		{"limit above max", http.MethodGet, "/characters/?limit=251", "", 400, "invalid_argument"},
		{"negative offset", http.MethodGet, "/lines/?offset=-1", "", 400, "invalid_argument"},
		{"non-numeric limit", http.MethodGet, "/lines/?limit=many", "", 400, "invalid_argument"},
		{"unknown movie sort", http.MethodGet, "/movies/?sort=popularity", "", 400, "invalid_argument"},
		{"unknown character sort", http.MethodGet, "/characters/?sort=age", "", 400, "invalid_argument"},
		{"equal participants", http.MethodPost, conversationsPath,
			`{"character_1_id": 0, "character_2_id": 0, "lines": []}`, 400, "invalid_argument"},
		{"speaker not a participant", http.MethodPost, conversationsPath,
			`{"character_1_id": 0, "character_2_id": 1, "lines": [{"character_id": 2, "line_text": "hi"}]}`, 400, "invalid_argument"},
		{"missing movie on write", http.MethodPost, "/movies/12346513245/conversations/",
			`{"character_1_id": 0, "character_2_id": 1, "lines": []}`, 404, "not_found"},
		{"character from another movie", http.MethodPost, conversationsPath,
			`{"character_1_id": 0, "character_2_id": 7, "lines": []}`, 404, "not_found"},
		{"missing lines", http.MethodPost, conversationsPath,
			`{"character_1_id": 0, "character_2_id": 1}`, 400, "invalid_argument"},
		{"missing line text", http.MethodPost, conversationsPath,
			`{"character_1_id": 0, "character_2_id": 1, "lines": [{"character_id": 0}]}`, 400, "invalid_argument"},
		{"malformed body", http.MethodPost, conversationsPath, `{"character_1_id": `, 400, "invalid_argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			code, body := do(t, app, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, code, body)

			var resp utils.StandardResponse
			require.NoError(t, json.Unmarshal([]byte(body), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
