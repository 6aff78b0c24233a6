package handlers

import (
	"fmt"

	"github.com/avissapr/coursework/internal/models"
	"github.com/avissapr/coursework/internal/repository"
	"github.com/avissapr/coursework/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ThingHandler serves the things resource: index, new, create, show and destroy.
type ThingHandler struct {
	svc    *services.RosterService
	things *repository.ThingRepository
}

// NewThingHandler creates a ThingHandler.
func NewThingHandler(svc *services.RosterService) *ThingHandler {
	return &ThingHandler{svc: svc, things: repository.NewThingRepository()}
}

// Index lists all things.
func (h *ThingHandler) Index(c *fiber.Ctx) error {
	things, err := h.things.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.Render("things/index", fiber.Map{"Title": "Things", "Things": things})
}

// Show displays one thing.
func (h *ThingHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c, "things.show")
	if err != nil {
		return err
	}
	thing, err := h.things.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Render("things/show", fiber.Map{"Title": thing.Name, "Thing": thing})
}

// New renders an empty thing form.
func (h *ThingHandler) New(c *fiber.Ctx) error {
	return c.Render("things/new", fiber.Map{"Title": "New Thing", "Thing": &models.Thing{}})
}

// Create saves a thing and redirects to it.
func (h *ThingHandler) Create(c *fiber.Ctx) error {
	thing := &models.Thing{Name: c.FormValue("name")}

	if err := h.svc.SaveThing(c.Context(), thing); err != nil {
		return renderInvalid(c, err, "things/new", fiber.Map{"Title": "New Thing", "Thing": thing})
	}
	return c.Redirect(fmt.Sprintf("/things/%d", thing.ID))
}

// Delete removes a thing and returns to the list.
func (h *ThingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "things.delete")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteThing(c.Context(), id); err != nil {
		return err
	}
	return c.Redirect("/things")
}
