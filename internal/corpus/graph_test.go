package corpus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/corpus/corpustest"
	"corpus-backend/internal/models"
)

func TestBuild_Counts(t *testing.T) {
	g := corpustest.Graph()

	assert.Equal(t, corpus.Counts{Movies: 3, Characters: 12, Conversations: 8, Lines: 19}, g.Counts())
}

func TestBuild_RejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *corpus.Records)
		want   string
	}{
		{
			name:   "character with unknown movie",
			mutate: func(r *corpus.Records) { r.Characters[0].MovieID = 99 },
			want:   "unknown movie 99",
		},
		{
			name:   "duplicate movie id",
			mutate: func(r *corpus.Records) { r.Movies = append(r.Movies, r.Movies[0]) },
			want:   "duplicate movie_id 0",
		},
		{
			name:   "conversation participant from another movie",
			mutate: func(r *corpus.Records) { r.Conversations[0].Character2ID = 7 },
			want:   "is not in movie 0",
		},
		{
			name:   "identical participants",
			mutate: func(r *corpus.Records) { r.Conversations[7].Character2ID = 10 },
			want:   "identical participants",
		},
		{
			name:   "line speaker outside conversation",
			mutate: func(r *corpus.Records) { r.Lines[0].CharacterID = 5 },
			want:   "not a participant",
		},
		{
			name:   "line movie differs from conversation movie",
			mutate: func(r *corpus.Records) { r.Lines[0].MovieID = 1 },
			want:   "its conversation is in movie 0",
		},
		{
			name:   "repeated line sort",
			mutate: func(r *corpus.Records) { r.Lines[1].LineSort = 5 },
			want:   "repeats line_sort 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := corpustest.Records()
			tt.mutate(r)

			_, err := corpus.Build(r)
			require.Error(t, err)
			assert.Equal(t, corpus.KindInvalidArgument, corpus.KindOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPrepareConversation_Preconditions(t *testing.T) {
	g := corpustest.Graph()
	line := func(id int64) []models.NewLine { return []models.NewLine{{CharacterID: id, Text: "hi"}} }

	tests := []struct {
		name string
		in   models.NewConversation
		kind corpus.Kind
		msg  string
	}{
		{"unknown movie", models.NewConversation{MovieID: 12346513245, Character1ID: 0, Character2ID: 1, Lines: line(0)}, corpus.KindNotFound, "movie not found"},
		{"unknown character 1", models.NewConversation{MovieID: 0, Character1ID: 12345788909, Character2ID: 1, Lines: line(0)}, corpus.KindNotFound, "character 1 not found"},
		{"character 1 from another movie", models.NewConversation{MovieID: 0, Character1ID: 7, Character2ID: 1, Lines: line(1)}, corpus.KindNotFound, "character 1 not found"},
		{"unknown character 2", models.NewConversation{MovieID: 0, Character1ID: 0, Character2ID: 999, Lines: line(0)}, corpus.KindNotFound, "character 2 not found"},
		{"same characters", models.NewConversation{MovieID: 0, Character1ID: 0, Character2ID: 0, Lines: line(0)}, corpus.KindInvalidArgument, "must be different"},
		{"foreign speaker", models.NewConversation{MovieID: 0, Character1ID: 0, Character2ID: 1, Lines: line(2)}, corpus.KindInvalidArgument, "not in the conversation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := g.PrepareConversation(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, corpus.KindOf(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestPrepareConversation_AllocatesIDsAndSort(t *testing.T) {
	g := corpustest.Graph()

	conv, lines, err := g.PrepareConversation(models.NewConversation{
		MovieID:      0,
		Character1ID: 0,
		Character2ID: 1,
		Lines: []models.NewLine{
			{CharacterID: 0, Text: "first"},
			{CharacterID: 1, Text: "second"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8), conv.ID)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(82), lines[0].ID)
	assert.Equal(t, int64(83), lines[1].ID)
	assert.Equal(t, 0, lines[0].LineSort)
	assert.Equal(t, 1, lines[1].LineSort)
	assert.Equal(t, conv.ID, lines[1].ConversationID)
	assert.Equal(t, int64(0), lines[1].MovieID)
}

func TestWithConversation_LeavesOriginalUntouched(t *testing.T) {
	g := corpustest.Graph()
	conv, lines, err := g.PrepareConversation(models.NewConversation{
		MovieID:      0,
		Character1ID: 0,
		Character2ID: 1,
		Lines:        []models.NewLine{{CharacterID: 0, Text: "testing the api"}},
	})
	require.NoError(t, err)

	next := g.WithConversation(conv, lines)

	assert.Equal(t, 8, g.Counts().Conversations)
	assert.Equal(t, 9, next.Counts().Conversations)
	assert.Equal(t, 20, next.Counts().Lines)

	_, err = g.GetConversation(conv.ID)
	assert.True(t, corpus.IsNotFound(err))

	before, err := g.GetCharacter(0)
	require.NoError(t, err)
	after, err := next.GetCharacter(0)
	require.NoError(t, err)
	assert.Len(t, before.TopConversations, 2)
	assert.Len(t, after.TopConversations, 3)

	// Ids keep growing from the extended graph.
	conv2, lines2, err := next.PrepareConversation(models.NewConversation{
		MovieID: 0, Character1ID: 0, Character2ID: 1,
		Lines: []models.NewLine{{CharacterID: 1, Text: "again"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), conv2.ID)
	assert.Equal(t, int64(83), lines2[0].ID)
}

func TestWithConversation_AppendsToLineListing(t *testing.T) {
	g := corpustest.Graph()
	conv, lines, err := g.PrepareConversation(models.NewConversation{
		MovieID: 0, Character1ID: 0, Character2ID: 1,
		Lines: []models.NewLine{{CharacterID: 1, Text: "I am BRUCE"}},
	})
	require.NoError(t, err)
	next := g.WithConversation(conv, lines)

	page, err := next.ListLines("bruce", "", corpus.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "I am BRUCE", page[0].Line)

	old, err := g.ListLines("bruce", "", corpus.Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, old)
}
