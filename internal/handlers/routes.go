package handlers

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, upload *UploadHandler, result *ResultHandler) {
	app.Get("/", result.HandleIndex)
	app.Post("/upload", upload.HandleUpload)
	app.Get("/avaliacao/:id", result.HandleGetResult)
	app.Get("/health", HandleHealth)
}
