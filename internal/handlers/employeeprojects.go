package handlers

import (
	"fmt"

	"github.com/avissapr/coursework/internal/models"
	"github.com/avissapr/coursework/internal/services"
	"github.com/gofiber/fiber/v2"
)

// EmployeeprojectHandler links and unlinks employees and projects.
// Neither action refreshes the project's stored employees_count.
type EmployeeprojectHandler struct {
	svc *services.RosterService
}

// NewEmployeeprojectHandler creates an EmployeeprojectHandler.
func NewEmployeeprojectHandler(svc *services.RosterService) *EmployeeprojectHandler {
	return &EmployeeprojectHandler{svc: svc}
}

// Create links an employee to a project and redirects to return_to, or to the project.
// A missing or unknown identifier renders the error page with status 422.
//
// Form Fields: employee_id, project_id, return_to (optional)
func (h *EmployeeprojectHandler) Create(c *fiber.Ctx) error {
	link := &models.Employeeproject{
		EmployeeID: formInt(c, "employee_id"),
		ProjectID:  formInt(c, "project_id"),
	}

	if _, err := h.svc.Link(c.Context(), link); err != nil {
		return err
	}
	return redirectBack(c, fmt.Sprintf("/projects/%d", link.ProjectID))
}

// Delete unlinks an employee from a project.
//
// Form Fields: employee_id, project_id, return_to (optional)
func (h *EmployeeprojectHandler) Delete(c *fiber.Ctx) error {
	employeeID := formInt(c, "employee_id")
	projectID := formInt(c, "project_id")

	if err := h.svc.Unlink(c.Context(), employeeID, projectID); err != nil {
		return err
	}
	return redirectBack(c, fmt.Sprintf("/projects/%d", projectID))
}
