// Package handlers implements the HTTP request handlers of the coursework binaries:
// the static file handler and the Rails-style resource handlers of the CRUD app.
package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/logging"
	"github.com/avissapr/coursework/internal/models"
	"github.com/avissapr/coursework/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts every CRUD resource on router.
//
// Routes follow the Rails resource layout with form posts in place of
// PUT/PATCH/DELETE: POST /x creates, POST /x/:id updates and
// POST /x/:id/delete destroys.
func RegisterRoutes(router fiber.Router, svc *services.RosterService, logger *logging.Logger) {
	roles := NewRoleHandler(svc)
	employees := NewEmployeeHandler(svc)
	projects := NewProjectHandler(svc)
	links := NewEmployeeprojectHandler(svc)
	things := NewThingHandler(svc)

	router.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/employees")
	})
	router.Get("/healthz", NewHealthHandler(logger).Check)

	router.Get("/roles", roles.Index)
	router.Get("/roles/new", roles.New)
	router.Post("/roles", roles.Create)
	router.Get("/roles/:id", roles.Show)
	router.Get("/roles/:id/edit", roles.Edit)
	router.Post("/roles/:id", roles.Update)
	router.Post("/roles/:id/delete", roles.Delete)

	router.Get("/employees", employees.Index)
	router.Get("/employees/new", employees.New)
	router.Post("/employees", employees.Create)
	router.Get("/employees/:id", employees.Show)
	router.Get("/employees/:id/edit", employees.Edit)
	router.Post("/employees/:id", employees.Update)
	router.Post("/employees/:id/delete", employees.Delete)

	router.Get("/projects", projects.Index)
	router.Get("/projects/new", projects.New)
	router.Post("/projects", projects.Create)
	router.Get("/projects/:id", projects.Show)
	router.Get("/projects/:id/edit", projects.Edit)
	router.Post("/projects/:id", projects.Update)
	router.Post("/projects/:id/recount", projects.Recount)
	router.Post("/projects/:id/delete", projects.Delete)

	router.Post("/employeeprojects", links.Create)
	router.Post("/employeeprojects/delete", links.Delete)

	router.Get("/things", things.Index)
	router.Get("/things/new", things.New)
	router.Post("/things", things.Create)
	router.Get("/things/:id", things.Show)
	router.Post("/things/:id/delete", things.Delete)
}

// paramID reads the :id route parameter. Anything that is not a positive
// integer cannot name a record, so it is reported as NotFound.
func paramID(c *fiber.Ctx, op string) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperr.NewNotFound(op, err)
	}
	return id, nil
}

// formInt parses an integer form field; blank or malformed values yield 0.
func formInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.FormValue(key)))
	if err != nil {
		return 0
	}
	return n
}

// formOptionalID parses an optional reference; blank, malformed or
// non-positive values yield nil.
func formOptionalID(c *fiber.Ctx, key string) *int {
	n := formInt(c, key)
	if n <= 0 {
		return nil
	}
	return &n
}

// formDate parses a yyyy-mm-dd form field; blank or malformed values yield nil.
func formDate(c *fiber.Ctx, key string) *time.Time {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(c.FormValue(key)))
	if err != nil {
		return nil
	}
	return &d
}

// renderInvalid re-renders a form with status 422 when err is a validation
// failure. Any other error is returned unchanged for the error handler.
func renderInvalid(c *fiber.Ctx, err error, view string, data fiber.Map) error {
	if apperr.KindOf(err) != apperr.ValidationFailure {
		return err
	}
	data["Errors"] = apperr.ViolationsOf(err)
	return c.Status(fiber.StatusUnprocessableEntity).Render(view, data)
}

// redirectBack redirects to the form's return_to field when it names a local
// path, and to fallback otherwise.
func redirectBack(c *fiber.Ctx, fallback string) error {
	target := c.FormValue("return_to")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = fallback
	}
	return c.Redirect(target)
}
