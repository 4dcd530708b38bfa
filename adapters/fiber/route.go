// Package fiber exposes the task manager over HTTP using the Fiber
// framework.
package fiber

import (
	"github.com/gofiber/fiber/v3"
	"github.com/lborres/tasuku/core"
)

// BasePath prefixes every route the adapter registers.
const BasePath = "/api/v1"

type Adapter struct {
	app   *fiber.App
	auth  core.AuthProvider
	tasks core.TaskProvider
	guard core.Authenticator
}

func New(app *fiber.App, auth core.AuthProvider, tasks core.TaskProvider, guard core.Authenticator) *Adapter {
	return &Adapter{app: app, auth: auth, tasks: tasks, guard: guard}
}

func (a *Adapter) RegisterRoutes() {
	api := a.app.Group(BasePath)

	// Public routes
	api.Post("/users", a.register)
	api.Post("/auth/login", a.login)

	// Protected routes
	api.Delete("/auth/logout", a.requireAuth, a.logout)
	api.Get("/auth/me", a.requireAuth, a.me)

	tasks := api.Group("/tasks", a.requireAuth)
	tasks.Post("/", a.createTask)
	tasks.Get("/", a.listTasks)
	tasks.Get("/:id", a.getTask)
	tasks.Put("/:id", a.updateTask)
	tasks.Delete("/:id", a.deleteTask)
}
