package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/tasuku/core"
)

// loginResponse is the login payload: the session identifier is handed to
// the client as its access token.
type loginResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

func (a *Adapter) register(c fiber.Ctx) error {
	var input core.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := a.auth.Register(input)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(user)
}

func (a *Adapter) login(c fiber.Ctx) error {
	var input core.LoginInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.auth.Login(input)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(loginResponse{
		ID:          result.User.ID,
		Email:       result.User.Email,
		AccessToken: result.Session.ID,
	})
}

func (a *Adapter) logout(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	if err := a.auth.Logout(session.ID); err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	})
}

func (a *Adapter) me(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	user, err := a.auth.CurrentUser(session)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(user)
}

func (a *Adapter) createTask(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	var input core.TaskInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	task, err := a.tasks.Create(session.UserID, input)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(task)
}

func (a *Adapter) listTasks(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	tasks, err := a.tasks.List(session.UserID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(tasks)
}

func (a *Adapter) getTask(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	task, err := a.tasks.Get(session.UserID, c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(task)
}

func (a *Adapter) updateTask(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	var input core.TaskInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	task, err := a.tasks.Update(session.UserID, c.Params("id"), input)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(task)
}

func (a *Adapter) deleteTask(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	if err := a.tasks.Delete(session.UserID, c.Params("id")); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// handleError maps service errors to HTTP responses.
func handleError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps core error types to HTTP status codes.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrEmailTooLong),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordTooLong),
		errors.Is(err, core.ErrTitleRequired),
		errors.Is(err, core.ErrTagNameRequired),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidPriority):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrSessionNotFound):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, core.ErrTaskNotFound),
		errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrStorageUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
