package handlers

import (
	"corpus-backend/internal/services"
	"corpus-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// LineHandler serves conversations and the lines they are made of.
type LineHandler struct {
	service services.CorpusService
}

func NewLineHandler(service services.CorpusService) *LineHandler {
	return &LineHandler{service: service}
}

// GetConversation godoc
// @Summary Get conversation by ID
// @Description Get the full transcript of a conversation in spoken order
// @Tags conversations
// @Produce json
// @Param id path int true "Conversation ID"
// @Success 200 {object} models.ConversationTranscript "Transcript"
// @Failure 400 {object} utils.StandardResponse "Invalid conversation ID"
// @Failure 404 {object} utils.StandardResponse "Conversation not found"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /conversations/{id} [get]
func (h *LineHandler) GetConversation(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "conversation")
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	conversation, err := h.service.GetConversation(c.UserContext(), id)
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return c.JSON(conversation)
}

// GetLine godoc
// @Summary Get line by ID
// @Description Get a line with its speaker and the other participant of its conversation
// @Tags lines
// @Produce json
// @Param id path int true "Line ID"
// @Success 200 {object} models.LineDetail "Line details"
// @Failure 400 {object} utils.StandardResponse "Invalid line ID"
// @Failure 404 {object} utils.StandardResponse "Line not found"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /lines/{id} [get]
func (h *LineHandler) GetLine(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "line")
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	line, err := h.service.GetLine(c.UserContext(), id)
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return c.JSON(line)
}

// ListLines godoc
// @Summary List lines
// @Description List lines filtered by speaker name and movie title, in conversational order
// @Tags lines
// @Produce json
// @Param character query string false "Case-insensitive speaker name substring"
// @Param movie query string false "Case-insensitive movie title substring"
// @Param limit query int false "Page size (1-250)" default(50)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {array} models.LineSummary "Lines"
// @Failure 400 {object} utils.StandardResponse "Invalid query"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /lines/ [get]
func (h *LineHandler) ListLines(c *fiber.Ctx) error {
	var q LineListQuery
	if err := parseQuery(c, &q); err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	lines, err := h.service.ListLines(c.UserContext(), services.LineOptions{
		Character: q.Character,
		Movie:     q.Movie,
		Limit:     limitValue(q.Limit),
		Offset:    q.Offset,
	})
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return c.JSON(lines)
}
