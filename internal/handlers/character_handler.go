package handlers

import (
	"corpus-backend/internal/services"
	"corpus-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CharacterHandler struct {
	service services.CorpusService
}

func NewCharacterHandler(service services.CorpusService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// GetCharacter godoc
// @Summary Get character by ID
// @Description Get a character with every other character it has conversed with, ranked by lines exchanged across all shared conversations
// @Tags characters
// @Produce json
// @Param id path int true "Character ID"
// @Success 200 {object} models.CharacterDetail "Character details"
// @Failure 400 {object} utils.StandardResponse "Invalid character ID"
// @Failure 404 {object} utils.StandardResponse "Character not found"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /characters/{id} [get]
func (h *CharacterHandler) GetCharacter(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "character")
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	character, err := h.service.GetCharacter(c.UserContext(), id)
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return c.JSON(character)
}

// ListCharacters godoc
// @Summary List characters
// @Description List characters filtered by name, sorted and paginated
// @Tags characters
// @Produce json
// @Param name query string false "Case-insensitive name substring"
// @Param sort query string false "Sort order" Enums(character, movie, number_of_lines) default(character)
// @Param limit query int false "Page size (1-250)" default(50)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {array} models.CharacterSummary "Characters"
// @Failure 400 {object} utils.StandardResponse "Invalid query"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /characters/ [get]
func (h *CharacterHandler) ListCharacters(c *fiber.Ctx) error {
	var q CharacterListQuery
	if err := parseQuery(c, &q); err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	characters, err := h.service.ListCharacters(c.UserContext(), services.ListOptions{
		Name:   q.Name,
		Sort:   q.Sort,
		Limit:  limitValue(q.Limit),
		Offset: q.Offset,
	})
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return c.JSON(characters)
}
