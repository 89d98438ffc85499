package handlers

import "corpus-backend/internal/models"

// MovieListQuery is the query string of GET /movies/.
type MovieListQuery struct {
	Name   string `query:"name"`
	Sort   string `query:"sort" validate:"omitempty,oneof=movie_title year rating"`
	Limit  *int   `query:"limit" validate:"omitempty,min=1,max=250"`
	Offset int    `query:"offset" validate:"min=0"`
}

// CharacterListQuery is the query string of GET /characters/.
type CharacterListQuery struct {
	Name   string `query:"name"`
	Sort   string `query:"sort" validate:"omitempty,oneof=character movie number_of_lines"`
	Limit  *int   `query:"limit" validate:"omitempty,min=1,max=250"`
	Offset int    `query:"offset" validate:"min=0"`
}

// LineListQuery is the query string of GET /lines/.
type LineListQuery struct {
	Character string `query:"character"`
	Movie     string `query:"movie"`
	Limit     *int   `query:"limit" validate:"omitempty,min=1,max=250"`
	Offset    int    `query:"offset" validate:"min=0"`
}

type LineRequest struct {
	CharacterID *int64  `json:"character_id" validate:"required" example:"0"`
	LineText    *string `json:"line_text" validate:"required" example:"testing the api"`
}

// ConversationRequest is the body of POST /movies/{movie_id}/conversations/.
// An empty lines array is accepted.
type ConversationRequest struct {
	Character1ID *int64        `json:"character_1_id" validate:"required" example:"0"`
	Character2ID *int64        `json:"character_2_id" validate:"required" example:"1"`
	Lines        []LineRequest `json:"lines" validate:"required,dive"`
}

func (r *ConversationRequest) toModel(movieID int64) models.NewConversation {
	lines := make([]models.NewLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, models.NewLine{CharacterID: *l.CharacterID, Text: *l.LineText})
	}
	return models.NewConversation{
		MovieID:      movieID,
		Character1ID: *r.Character1ID,
		Character2ID: *r.Character2ID,
		Lines:        lines,
	}
}

// limitValue returns the requested limit, or 0 to select the default.
func limitValue(limit *int) int {
	if limit == nil {
		return 0
	}
	return *limit
}
