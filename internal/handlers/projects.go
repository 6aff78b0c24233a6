package handlers

import (
	"fmt"

	"github.com/avissapr/coursework/internal/models"
	"github.com/avissapr/coursework/internal/repository"
	"github.com/avissapr/coursework/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ProjectHandler serves the projects resource. Every save goes through
// RosterService.SaveProject, so the stored employees_count is refreshed on
// create, update and recount.
type ProjectHandler struct {
	svc       *services.RosterService
	projects  *repository.ProjectRepository
	employees *repository.EmployeeRepository
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(svc *services.RosterService) *ProjectHandler {
	return &ProjectHandler{
		svc:       svc,
		projects:  repository.NewProjectRepository(),
		employees: repository.NewEmployeeRepository(),
	}
}

// Index lists all projects with their stored employee counts.
//
// Template: projects/index.html
func (h *ProjectHandler) Index(c *fiber.Ctx) error {
	projects, err := h.projects.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.Render("projects/index", fiber.Map{"Title": "Projects", "Projects": projects})
}

// Show displays a project, its employees and the assign form.
//
// The page shows the stored employees_count next to the live employee list;
// the two differ after links change until the project is saved again.
//
// Template: projects/show.html
func (h *ProjectHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c, "projects.show")
	if err != nil {
		return err
	}
	project, err := h.projects.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	employees, err := h.projects.Employees(c.Context(), id)
	if err != nil {
		return err
	}
	allEmployees, err := h.employees.ListAll(c.Context())
	if err != nil {
		return err
	}

	return c.Render("projects/show", fiber.Map{
		"Title":        project.Name,
		"Project":      project,
		"Employees":    employees,
		"AllEmployees": allEmployees,
	})
}

// New renders an empty project form.
func (h *ProjectHandler) New(c *fiber.Ctx) error {
	return c.Render("projects/form", h.formData(&models.Project{}))
}

// Edit renders the form for an existing project.
func (h *ProjectHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c, "projects.edit")
	if err != nil {
		return err
	}
	project, err := h.projects.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Render("projects/form", h.formData(project))
}

// Create saves a new project and redirects to it.
//
// Form Fields: name. employees_count is never read from the form.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	project := &models.Project{Name: c.FormValue("name")}

	if err := h.svc.SaveProject(c.Context(), project); err != nil {
		return renderInvalid(c, err, "projects/form", h.formData(project))
	}
	return c.Redirect(fmt.Sprintf("/projects/%d", project.ID))
}

// Update saves changes to an existing project.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "projects.update")
	if err != nil {
		return err
	}
	project, err := h.projects.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	project.Name = c.FormValue("name")

	if err := h.svc.SaveProject(c.Context(), project); err != nil {
		return renderInvalid(c, err, "projects/form", h.formData(project))
	}
	return c.Redirect(fmt.Sprintf("/projects/%d", project.ID))
}

// Recount re-saves a project so its employees_count matches its links.
func (h *ProjectHandler) Recount(c *fiber.Ctx) error {
	id, err := paramID(c, "projects.recount")
	if err != nil {
		return err
	}
	if _, err := h.svc.Recount(c.Context(), id); err != nil {
		return err
	}
	return c.Redirect(fmt.Sprintf("/projects/%d", id))
}

// Delete removes a project and returns to the list.
// Projects with employees assigned are refused with 422.
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "projects.delete")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteProject(c.Context(), id); err != nil {
		return err
	}
	return c.Redirect("/projects")
}

func (h *ProjectHandler) formData(project *models.Project) fiber.Map {
	data := fiber.Map{"Project": project, "Title": "New Project", "Action": "/projects"}
	if project.ID != 0 {
		data["Title"] = "Editing Project"
		data["Action"] = fmt.Sprintf("/projects/%d", project.ID)
	}
	return data
}
