package handlers

import (
	"corpus-backend/internal/corpus"
	"corpus-backend/internal/services"
	"corpus-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.CorpusService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.CorpusService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetMovie godoc
// @Summary Get movie by ID
// @Description Get a movie with its five characters that have the most lines
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.MovieDetail "Movie details"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "movie")
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	movie, err := h.service.GetMovie(c.UserContext(), id)
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return c.JSON(movie)
}

// ListMovies godoc
// @Summary List movies
// @Description List movies filtered by title, sorted and paginated
// @Tags movies
// @Produce json
// @Param name query string false "Case-insensitive title substring"
// @Param sort query string false "Sort order" Enums(movie_title, year, rating) default(movie_title)
// @Param limit query int false "Page size (1-250)" default(50)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {array} models.MovieSummary "Movies"
// @Failure 400 {object} utils.StandardResponse "Invalid query"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /movies/ [get]
func (h *MovieHandler) ListMovies(c *fiber.Ctx) error {
	var q MovieListQuery
	if err := parseQuery(c, &q); err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	movies, err := h.service.ListMovies(c.UserContext(), services.ListOptions{
		Name:   q.Name,
		Sort:   q.Sort,
		Limit:  limitValue(q.Limit),
		Offset: q.Offset,
	})
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return c.JSON(movies)
}

// AddConversation godoc
// @Summary Create a conversation
// @Description Create a conversation between two characters of a movie together with its lines, in order
// @Tags conversations
// @Accept json
// @Produce json
// @Param movie_id path int true "Movie ID"
// @Param conversation body ConversationRequest true "Conversation"
// @Success 200 {integer} int64 "Id of the new conversation"
// @Failure 400 {object} utils.StandardResponse "Invalid request body or constraint violation"
// @Failure 404 {object} utils.StandardResponse "Movie or character not found"
// @Failure 409 {object} utils.StandardResponse "Id collision"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /movies/{movie_id}/conversations/ [post]
func (h *MovieHandler) AddConversation(c *fiber.Ctx) error {
	movieID, err := pathID(c, "movie_id", "movie")
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	var req ConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.CorpusErrorResponse(c, corpus.InvalidArgument("invalid request body: %v", err))
	}
	if err := validateStruct(&req); err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	id, err := h.service.AddConversation(c.UserContext(), req.toModel(movieID))
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"conversation_id": id,
		"movie_id":        movieID,
		"request_id":      c.Locals("requestid"),
	}).Debug("Conversation created via API")
	return c.JSON(id)
}
