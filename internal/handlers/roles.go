package handlers

import (
	"fmt"

	"github.com/avissapr/coursework/internal/models"
	"github.com/avissapr/coursework/internal/repository"
	"github.com/avissapr/coursework/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RoleHandler serves the roles resource.
type RoleHandler struct {
	svc   *services.RosterService
	roles *repository.RoleRepository
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(svc *services.RosterService) *RoleHandler {
	return &RoleHandler{svc: svc, roles: repository.NewRoleRepository()}
}

// Index lists all roles.
//
// Template: roles/index.html
func (h *RoleHandler) Index(c *fiber.Ctx) error {
	roles, err := h.roles.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.Render("roles/index", fiber.Map{"Title": "Roles", "Roles": roles})
}

// Show displays a role and the employees holding it.
//
// Template: roles/show.html
func (h *RoleHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c, "roles.show")
	if err != nil {
		return err
	}
	role, err := h.roles.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	employees, err := h.roles.Employees(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Render("roles/show", fiber.Map{"Title": role.Name, "Role": role, "Employees": employees})
}

// New renders an empty role form.
func (h *RoleHandler) New(c *fiber.Ctx) error {
	return c.Render("roles/form", h.formData(&models.Role{}))
}

// Edit renders the form for an existing role.
func (h *RoleHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c, "roles.edit")
	if err != nil {
		return err
	}
	role, err := h.roles.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Render("roles/form", h.formData(role))
}

// Create saves a new role and redirects to it.
//
// Form Fields: name, department
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	role := &models.Role{}
	bindRole(c, role)

	if err := h.svc.SaveRole(c.Context(), role); err != nil {
		return renderInvalid(c, err, "roles/form", h.formData(role))
	}
	return c.Redirect(fmt.Sprintf("/roles/%d", role.ID))
}

// Update saves changes to an existing role.
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "roles.update")
	if err != nil {
		return err
	}
	role, err := h.roles.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	bindRole(c, role)

	if err := h.svc.SaveRole(c.Context(), role); err != nil {
		return renderInvalid(c, err, "roles/form", h.formData(role))
	}
	return c.Redirect(fmt.Sprintf("/roles/%d", role.ID))
}

// Delete removes a role and returns to the list.
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "roles.delete")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRole(c.Context(), id); err != nil {
		return err
	}
	return c.Redirect("/roles")
}

func (h *RoleHandler) formData(role *models.Role) fiber.Map {
	data := fiber.Map{"Role": role, "Title": "New Role", "Action": "/roles"}
	if role.ID != 0 {
		data["Title"] = "Editing Role"
		data["Action"] = fmt.Sprintf("/roles/%d", role.ID)
	}
	return data
}

func bindRole(c *fiber.Ctx, role *models.Role) {
	role.Name = c.FormValue("name")
	role.Department = c.FormValue("department")
}
