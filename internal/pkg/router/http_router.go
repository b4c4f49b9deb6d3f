package router

import (
	"github.com/gofiber/fiber/v2"

	"lanblog/app/controllers"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", controllers.HandleIndex)
	app.Post("/post", controllers.HandleCreatePost)
	app.Post("/comment/:id", controllers.HandleAddComment)
	app.Post("/post/:id/delete", controllers.HandleDeletePost)
	app.Get("/uploads/:filename", controllers.HandleUploadedFile)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
