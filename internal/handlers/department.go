package handlers

import (
	"net/http"
	"strconv"

	"github.com/aokumo/dept-task-api/internal/dto"
	apierrors "github.com/aokumo/dept-task-api/internal/errors"
	"github.com/aokumo/dept-task-api/internal/middleware"
	"github.com/aokumo/dept-task-api/internal/services"
	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

type createDepartmentRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *uint64 `json:"parent_id"`
}

// CreateDepartment creates a department with a fresh join code
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	department, err := h.departmentService.CreateDepartment(services.CreateDepartmentInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	}, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(*department, true))
}

// ListDepartments returns the departments visible to the actor
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	departments, err := h.departmentService.ListDepartments(actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departments": dto.ToDepartmentDTOs(departments, actor.IsHRAdmin()),
	})
}

// GetDepartment returns one department
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid department ID")
		return
	}

	department, err := h.departmentService.GetDepartment(id, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department, actor.IsHRAdmin()))
}

// RegenerateJoinCode rotates a department's join code
func (h *DepartmentHandler) RegenerateJoinCode(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid department ID")
		return
	}

	department, err := h.departmentService.RegenerateJoinCode(id, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department, true))
}
