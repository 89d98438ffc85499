package routes

import (
	"corpus-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

// Setup mounts the corpus API at the root of app.
func Setup(app *fiber.App, movieHandler *handlers.MovieHandler, characterHandler *handlers.CharacterHandler, lineHandler *handlers.LineHandler, syncHandler *handlers.SyncHandler) {
	movies := app.Group("/movies")
	{
		movies.Get("/", movieHandler.ListMovies)
		movies.Get("/:id", movieHandler.GetMovie)
		movies.Post("/:movie_id/conversations", movieHandler.AddConversation)
	}

	characters := app.Group("/characters")
	{
		characters.Get("/", characterHandler.ListCharacters)
		characters.Get("/:id", characterHandler.GetCharacter)
	}

	conversations := app.Group("/conversations")
	{
		conversations.Get("/:id", lineHandler.GetConversation)
	}

	lines := app.Group("/lines")
	{
		lines.Get("/", lineHandler.ListLines)
		lines.Get("/:id", lineHandler.GetLine)
	}

	sync := app.Group("/sync")
	{
		sync.Get("/status", syncHandler.GetSyncStatus)
	}
}
