package models

import (
	"time"
)

type Movie struct {
	ID           int64    `gorm:"column:movie_id;primaryKey;autoIncrement:false" json:"movie_id" example:"0"`
	Title        string   `gorm:"not null;index" json:"title" example:"10 things i hate about you"`
	Year         string   `gorm:"size:16;index" json:"year" example:"1999"`
	IMDBRating   *float64 `gorm:"column:imdb_rating;index" json:"imdb_rating" example:"6.9"`
	IMDBVotes    *int64   `gorm:"column:imdb_votes" json:"imdb_votes" example:"62847"`
	RawScriptURL string   `gorm:"column:raw_script_url" json:"raw_script_url"`
}

func (Movie) TableName() string {
	return "movies"
}

type Character struct {
	ID      int64  `gorm:"column:character_id;primaryKey;autoIncrement:false" json:"character_id" example:"0"`
	Name    string `gorm:"not null;index" json:"name" example:"BIANCA"`
	MovieID int64  `gorm:"index;not null" json:"movie_id" example:"0"`
	Gender  string `gorm:"size:8" json:"gender" example:"f"`
	Age     *int   `json:"age"`
}

func (Character) TableName() string {
	return "characters"
}

type Conversation struct {
	ID           int64 `gorm:"column:conversation_id;primaryKey;autoIncrement:false" json:"conversation_id" example:"0"`
	Character1ID int64 `gorm:"column:character1_id;index;not null" json:"character1_id" example:"0"`
	Character2ID int64 `gorm:"column:character2_id;index;not null" json:"character2_id" example:"1"`
	MovieID      int64 `gorm:"index;not null" json:"movie_id" example:"0"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type Line struct {
	ID             int64  `gorm:"column:line_id;primaryKey;autoIncrement:false" json:"line_id" example:"49"`
	CharacterID    int64  `gorm:"index;not null" json:"character_id" example:"0"`
	MovieID        int64  `gorm:"index;not null" json:"movie_id" example:"0"`
	ConversationID int64  `gorm:"index:idx_lines_conversation_sort,priority:1;not null" json:"conversation_id" example:"0"`
	LineSort       int    `gorm:"index:idx_lines_conversation_sort,priority:2;not null" json:"line_sort" example:"0"`
	LineText       string `gorm:"type:text" json:"line_text" example:"testing the api"`
}

func (Line) TableName() string {
	return "lines"
}

// SyncLog records one bulk import of the corpus into the relational store.
type SyncLog struct {
	ID            uint      `gorm:"primaryKey" json:"id" example:"1"`
	SyncType      string    `gorm:"index" json:"sync_type" example:"import"`
	Status        string    `gorm:"index" json:"status" example:"success"`
	Source        string    `json:"source" example:"dir"`
	Movies        int       `json:"movies" example:"617"`
	Characters    int       `json:"characters" example:"9035"`
	Conversations int       `json:"conversations" example:"83097"`
	Lines         int       `json:"lines" example:"304713"`
	ErrorMessage  string    `gorm:"type:text" json:"error_message,omitempty"`
	SyncedAt      time.Time `gorm:"index" json:"synced_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (SyncLog) TableName() string {
	return "sync_logs"
}
