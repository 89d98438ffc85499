package models

import "time"

// Read models shared by every corpus backend. Field names follow the public API.

type TopCharacter struct {
	CharacterID int64  `json:"character_id" example:"0"`
	Character   string `json:"character" example:"BIANCA"`
	NumLines    int    `json:"num_lines" example:"94"`
}

type MovieDetail struct {
	MovieID       int64          `json:"movie_id" example:"0"`
	Title         string         `json:"title" example:"10 things i hate about you"`
	TopCharacters []TopCharacter `json:"top_characters"`
}

type MovieSummary struct {
	MovieID    int64    `json:"movie_id" example:"0"`
	MovieTitle string   `json:"movie_title" example:"10 things i hate about you"`
	Year       string   `json:"year" example:"1999"`
	IMDBRating *float64 `json:"imdb_rating" example:"6.9"`
	IMDBVotes  *int64   `json:"imdb_votes" example:"62847"`
}

type ConversationPartner struct {
	CharacterID           int64  `json:"character_id" example:"1"`
	Character             string `json:"character" example:"BIANCA"`
	Gender                string `json:"gender" example:"f"`
	NumberOfLinesTogether int    `json:"number_of_lines_together" example:"12"`
}

type CharacterDetail struct {
	CharacterID      int64                 `json:"character_id" example:"2"`
	Character        string                `json:"character" example:"CAMERON"`
	Movie            string                `json:"movie" example:"10 things i hate about you"`
	Gender           string                `json:"gender" example:"m"`
	TopConversations []ConversationPartner `json:"top_conversations"`
}

type CharacterSummary struct {
	CharacterID   int64  `json:"character_id" example:"0"`
	Character     string `json:"character" example:"BIANCA"`
	Movie         string `json:"movie" example:"10 things i hate about you"`
	NumberOfLines int    `json:"number_of_lines" example:"94"`
}

type TranscriptLine struct {
	CharacterName string `json:"character_name" example:"BIANCA"`
	Line          string `json:"line" example:"testing the api"`
}

type ConversationTranscript struct {
	ConversationID int64            `json:"conversation_id" example:"25"`
	MovieID        int64            `json:"movie_id" example:"0"`
	MovieTitle     string           `json:"movie_title" example:"10 things i hate about you"`
	Lines          []TranscriptLine `json:"lines"`
}

type LineDetail struct {
	LineID         int64  `json:"line_id" example:"49"`
	Movie          string `json:"movie" example:"10 things i hate about you"`
	SpokenBy       string `json:"spoken_by" example:"BIANCA"`
	SpokenTo       string `json:"spoken_to" example:"CAMERON"`
	ConversationID int64  `json:"conversation_id" example:"25"`
	Line           string `json:"line" example:"Did you change your hair?"`
}

type LineSummary struct {
	LineID        int64  `json:"line_id" example:"49"`
	MovieTitle    string `json:"movie_title" example:"10 things i hate about you"`
	CharacterName string `json:"character_name" example:"BIANCA"`
	Line          string `json:"line" example:"Did you change your hair?"`
}

// NewLine is one utterance of a conversation being created.
type NewLine struct {
	CharacterID int64
	Text        string
}

type NewConversation struct {
	MovieID      int64
	Character1ID int64
	Character2ID int64
	Lines        []NewLine
}

// SyncStatus describes how fresh the data served by a backend is.
type SyncStatus struct {
	Backend       string     `json:"backend" example:"memory"`
	Marker        int64      `json:"marker" example:"1700000000000000000"`
	LastSyncedAt  *time.Time `json:"last_synced_at"`
	Reloads       int64      `json:"reloads" example:"3"`
	Movies        int        `json:"movies" example:"617"`
	Characters    int        `json:"characters" example:"9035"`
	Conversations int        `json:"conversations" example:"83097"`
	Lines         int        `json:"lines" example:"304713"`
	LastImport    *SyncLog   `json:"last_import,omitempty"`
}
