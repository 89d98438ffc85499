package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/corpus/corpustest"
)

func TestDecodeMovies_OptionalCells(t *testing.T) {
	data := []byte("movie_id,title,year,imdb_rating,imdb_votes,raw_script_url\n" +
		"0,10 things i hate about you,1999,6.9,62847,http://example.com/10things\n" +
		"1, watchmen,2009,,n/a,\n")

	movies, err := DecodeMovies(data)
	require.NoError(t, err)
	require.Len(t, movies, 2)

	require.NotNil(t, movies[0].IMDBRating)
	assert.InDelta(t, 6.9, *movies[0].IMDBRating, 1e-9)
	require.NotNil(t, movies[0].IMDBVotes)
	assert.Equal(t, int64(62847), *movies[0].IMDBVotes)

	assert.Equal(t, "watchmen", movies[1].Title)
	assert.Nil(t, movies[1].IMDBRating)
	assert.Nil(t, movies[1].IMDBVotes)
	assert.Equal(t, "", movies[1].RawScriptURL)
}

func TestDecodeLines_ColumnsByName(t *testing.T) {
	data := []byte("line_text,line_sort,conversation_id,movie_id,character_id,line_id\n" +
		"\"Well, I thought we'd start with pronunciation.\",2,0,0,2,11\n")

	lines, err := DecodeLines(data)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(11), lines[0].ID)
	assert.Equal(t, int64(2), lines[0].CharacterID)
	assert.Equal(t, 2, lines[0].LineSort)
	assert.Equal(t, "Well, I thought we'd start with pronunciation.", lines[0].LineText)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty document", "", "missing header row"},
		{"missing column", "character_id,name,movie_id,gender\n0,BIANCA,0,f\n", `missing column "age"`},
		{"bad id", "character_id,name,movie_id,gender,age\nx,BIANCA,0,f,\n", `invalid character_id "x"`},
		{"short row", "character_id,name,movie_id,gender,age\n0,BIANCA\n", "expected 5 fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCharacters([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, corpus.KindInvalidArgument, corpus.KindOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeDecode_Fixture(t *testing.T) {
	r := corpustest.Records()

	movies, err := EncodeMovies(r.Movies)
	require.NoError(t, err)
	characters, err := EncodeCharacters(r.Characters)
	require.NoError(t, err)
	lines, err := EncodeLines(r.Lines)
	require.NoError(t, err)

	gotMovies, err := DecodeMovies(movies)
	require.NoError(t, err)
	assert.Equal(t, r.Movies, gotMovies)

	gotCharacters, err := DecodeCharacters(characters)
	require.NoError(t, err)
	assert.Equal(t, r.Characters, gotCharacters)

	gotLines, err := DecodeLines(lines)
	require.NoError(t, err)
	assert.Equal(t, r.Lines, gotLines)
}

func TestAppendRows_RepairsTrailingNewline(t *testing.T) {
	out, err := appendRows([]byte("conversation_id,character1_id,character2_id,movie_id\n0,0,2,0"), [][]string{{"1", "2", "0", "0"}})
	require.NoError(t, err)
	assert.Equal(t, "conversation_id,character1_id,character2_id,movie_id\n0,0,2,0\n1,2,0,0\n", string(out))
}
