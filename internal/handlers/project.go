package handlers

import (
	"net/http"
	"strconv"

	"github.com/aokumo/dept-task-api/internal/dto"
	apierrors "github.com/aokumo/dept-task-api/internal/errors"
	"github.com/aokumo/dept-task-api/internal/middleware"
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Priority     *int    `json:"priority"`
	DepartmentID *uint64 `json:"department_id"`
}

// CreateProject creates a project in the actor's (or a chosen) department
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		Priority:     req.Priority,
		DepartmentID: req.DepartmentID,
	}, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects lists projects in the actor's visible departments
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListProjects(c.Query("include_archived") == "true", actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// GetProject returns one project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, projectID, ok := projectRequestContext(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

type updateProjectRequest struct {
	Description *string               `json:"description"`
	Priority    *int                  `json:"priority"`
	Status      *models.ProjectStatus `json:"status"`
}

// UpdateProject updates mutable project fields
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, projectID, ok := projectRequestContext(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.UpdateProject(projectID, services.UpdateProjectInput{
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// GetCollaborators returns the derived collaborator set of a project
func (h *ProjectHandler) GetCollaborators(c *gin.Context) {
	actor, projectID, ok := projectRequestContext(c)
	if !ok {
		return
	}

	collaborators, err := h.projectService.GetProjectCollaborators(projectID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborators": dto.ToUserDTOs(collaborators)})
}

// RemoveCollaborator unassigns a user from every task in the project
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	actor, projectID, ok := projectRequestContext(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveProjectCollaborator(projectID, userID, actor); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed"})
}

// ArchiveProject archives a project, freeing its name
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	actor, projectID, ok := projectRequestContext(c)
	if !ok {
		return
	}

	project, err := h.projectService.ArchiveProject(projectID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UnarchiveProject restores an archived project
func (h *ProjectHandler) UnarchiveProject(c *gin.Context) {
	actor, projectID, ok := projectRequestContext(c)
	if !ok {
		return
	}

	project, err := h.projectService.UnarchiveProject(projectID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

func projectRequestContext(c *gin.Context) (*models.UserProfile, uint64, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, 0, false
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return nil, 0, false
	}

	return actor, projectID, true
}
