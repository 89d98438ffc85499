// Package corpustest provides a small, fully consistent corpus for tests.
//
// Movie 0 is "10 things i hate about you" with BIANCA (0) and BRUCE (1), so a
// conversation between characters 0 and 1 can be posted against it. Line 49 and
// character 2 (CAMERON) have stable, documented expected outputs.
package corpustest

import (
	"corpus-backend/internal/corpus"
	"corpus-backend/internal/models"
)

// Records returns a fresh copy of the fixture corpus.
func Records() *corpus.Records {
	return &corpus.Records{
		Movies:        Movies(),
		Characters:    Characters(),
		Conversations: Conversations(),
		Lines:         Lines(),
	}
}

// Graph builds the fixture corpus and panics if it is inconsistent.
func Graph() *corpus.Graph {
	g, err := corpus.Build(Records())
	if err != nil {
		panic(err)
	}
	return g
}

func ptr[T any](v T) *T { return &v }

func Movies() []models.Movie {
	return []models.Movie{
		{ID: 0, Title: "10 things i hate about you", Year: "1999", IMDBRating: ptr(6.9), IMDBVotes: ptr[int64](62847), RawScriptURL: "http://www.dailyscript.com/scripts/10Things.html"},
		{ID: 1, Title: "watchmen", Year: "2009", IMDBRating: ptr(7.8), IMDBVotes: ptr[int64](135229), RawScriptURL: "http://www.imsdb.com/scripts/Watchmen.html"},
		{ID: 2, Title: "zebra nights", Year: ""},
	}
}

func Characters() []models.Character {
	return []models.Character{
		{ID: 0, Name: "BIANCA", MovieID: 0, Gender: "f", Age: ptr(17)},
		{ID: 1, Name: "BRUCE", MovieID: 0, Gender: "?"},
		{ID: 2, Name: "CAMERON", MovieID: 0, Gender: "m", Age: ptr(18)},
		{ID: 3, Name: "CHASTITY", MovieID: 0, Gender: "f"},
		{ID: 4, Name: "JOEY", MovieID: 0, Gender: "m"},
		{ID: 5, Name: "KAT", MovieID: 0, Gender: "f"},
		{ID: 6, Name: "MANDELLA", MovieID: 0, Gender: "f"},
		{ID: 7, Name: "DR. MANHATTAN", MovieID: 1, Gender: "m"},
		{ID: 8, Name: "LAURIE", MovieID: 1, Gender: "f"},
		{ID: 9, Name: "RORSCHACH", MovieID: 1, Gender: "m"},
		{ID: 10, Name: "AMY", MovieID: 2, Gender: "f"},
		{ID: 11, Name: "AMOS", MovieID: 2, Gender: "m"},
	}
}

func Conversations() []models.Conversation {
	return []models.Conversation{
		{ID: 0, Character1ID: 0, Character2ID: 2, MovieID: 0},
		{ID: 1, Character1ID: 2, Character2ID: 0, MovieID: 0},
		{ID: 2, Character1ID: 2, Character2ID: 5, MovieID: 0},
		{ID: 3, Character1ID: 4, Character2ID: 0, MovieID: 0},
		{ID: 4, Character1ID: 3, Character2ID: 2, MovieID: 0},
		{ID: 5, Character1ID: 7, Character2ID: 8, MovieID: 1},
		{ID: 6, Character1ID: 9, Character2ID: 7, MovieID: 1},
		{ID: 7, Character1ID: 10, Character2ID: 11, MovieID: 2},
	}
}

// Lines are listed out of conversational order on purpose; conversation 0
// uses non-contiguous sort values.
func Lines() []models.Line {
	return []models.Line{
		{ID: 13, CharacterID: 2, MovieID: 0, ConversationID: 0, LineSort: 5, LineText: "Okay... then how 'bout we try out some French cuisine."},
		{ID: 10, CharacterID: 0, MovieID: 0, ConversationID: 0, LineSort: 1, LineText: "Can we make this quick?"},
		{ID: 12, CharacterID: 0, MovieID: 0, ConversationID: 0, LineSort: 3, LineText: "Not the hacking and gagging and spitting part."},
		{ID: 11, CharacterID: 2, MovieID: 0, ConversationID: 0, LineSort: 2, LineText: "Well, I thought we'd start with pronunciation."},
		{ID: 50, CharacterID: 0, MovieID: 0, ConversationID: 1, LineSort: 1, LineText: "Forget it."},
		{ID: 49, CharacterID: 2, MovieID: 0, ConversationID: 1, LineSort: 0, LineText: "You're asking me out. That's so cute."},
		{ID: 20, CharacterID: 2, MovieID: 0, ConversationID: 2, LineSort: 0, LineText: "Kat?"},
		{ID: 21, CharacterID: 5, MovieID: 0, ConversationID: 2, LineSort: 1, LineText: "What?"},
		{ID: 22, CharacterID: 2, MovieID: 0, ConversationID: 2, LineSort: 2, LineText: "Nothing."},
		{ID: 30, CharacterID: 4, MovieID: 0, ConversationID: 3, LineSort: 0, LineText: "Where've you been?"},
		{ID: 40, CharacterID: 3, MovieID: 0, ConversationID: 4, LineSort: 0, LineText: "Have fun tonight?"},
		{ID: 41, CharacterID: 2, MovieID: 0, ConversationID: 4, LineSort: 1, LineText: "Tons"},
		{ID: 62, CharacterID: 7, MovieID: 1, ConversationID: 5, LineSort: 2, LineText: "These people."},
		{ID: 60, CharacterID: 7, MovieID: 1, ConversationID: 5, LineSort: 0, LineText: "I am tired of Earth."},
		{ID: 61, CharacterID: 8, MovieID: 1, ConversationID: 5, LineSort: 1, LineText: "Jon, please."},
		{ID: 70, CharacterID: 9, MovieID: 1, ConversationID: 6, LineSort: 0, LineText: "Never compromise."},
		{ID: 71, CharacterID: 7, MovieID: 1, ConversationID: 6, LineSort: 1, LineText: "Rorschach."},
		{ID: 80, CharacterID: 10, MovieID: 2, ConversationID: 7, LineSort: 0, LineText: "Hi Amos."},
		{ID: 81, CharacterID: 11, MovieID: 2, ConversationID: 7, LineSort: 1, LineText: "Hi Amy."},
	}
}
