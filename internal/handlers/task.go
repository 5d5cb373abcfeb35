package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aokumo/dept-task-api/internal/dto"
	apierrors "github.com/aokumo/dept-task-api/internal/errors"
	"github.com/aokumo/dept-task-api/internal/middleware"
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/services"
	"github.com/aokumo/dept-task-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description" binding:"required"`
	Priority          *int       `json:"priority"`
	DueDate           *time.Time `json:"due_date"`
	StartDate         *time.Time `json:"start_date"`
	OwnerID           *uint64    `json:"owner_id"`
	DepartmentID      *uint64    `json:"department_id"`
	ProjectID         *uint64    `json:"project_id"`
	ParentTaskID      *uint64    `json:"parent_task_id"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurringInterval *int       `json:"recurring_interval"`
	Tags              []string   `json:"tags"`
	AssigneeIDs       []uint64   `json:"assignee_ids" binding:"required"`
}

// CreateTask creates a task; owner and department default to the actor's own
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	input := services.CreateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Priority:          req.Priority,
		DueDate:           req.DueDate,
		StartDate:         req.StartDate,
		OwnerID:           actor.ID,
		DepartmentID:      actor.DepartmentID,
		ProjectID:         req.ProjectID,
		ParentTaskID:      req.ParentTaskID,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: req.RecurringInterval,
		Tags:              req.Tags,
		AssigneeIDs:       req.AssigneeIDs,
	}
	if req.OwnerID != nil {
		input.OwnerID = *req.OwnerID
	}
	if req.DepartmentID != nil {
		input.DepartmentID = *req.DepartmentID
	}

	task, err := h.taskService.CreateTask(input, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task with related data
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasks returns tasks visible to the actor
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		AssignedToMe:    c.Query("assigned_to_me") == "true",
		DueToday:        c.Query("due_today") == "true",
		IncludeArchived: c.Query("include_archived") == "true",
		SortByDueDate:   c.Query("sort") == "due_date",
		Page:            params.Page,
		PageSize:        params.Limit,
	}

	if v := c.Query("department_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid department_id")
			return
		}
		input.DepartmentID = &id
	}
	if v := c.Query("project_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		input.ProjectID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		input.Status = &status
	}

	tasks, total, err := h.taskService.ListTasks(input, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

type updateTaskRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Priority          *int       `json:"priority"`
	DueDate           *time.Time `json:"due_date"`
	StartDate         *time.Time `json:"start_date"`
	ClearDates        bool       `json:"clear_dates"`
	IsRecurring       *bool      `json:"is_recurring"`
	RecurringInterval *int       `json:"recurring_interval"`
}

// UpdateTask applies the independently-authorized single-field updates
// carried in the request body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	var task *models.Task
	var err error

	if req.Title != nil {
		if task, err = h.taskService.UpdateTitle(taskID, *req.Title, actor); err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}
	}
	if req.Description != nil {
		if task, err = h.taskService.UpdateDescription(taskID, *req.Description, actor); err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}
	}
	if req.Priority != nil {
		if task, err = h.taskService.UpdatePriority(taskID, *req.Priority, actor); err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}
	}
	if req.DueDate != nil || req.StartDate != nil || req.ClearDates {
		if task, err = h.taskService.UpdateDeadline(taskID, req.DueDate, req.StartDate, actor); err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}
	}
	if req.IsRecurring != nil {
		if task, err = h.taskService.UpdateRecurring(taskID, *req.IsRecurring, req.RecurringInterval, actor); err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}
	}

	if task == nil {
		if task, err = h.taskService.GetTask(taskID, actor); err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

type updateStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// UpdateStatus moves a task along the status machine
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, req.Status, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

type assigneeRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// AddAssignee assigns one more user to the task
func (h *TaskHandler) AddAssignee(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	var req assigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.AddAssignee(taskID, req.UserID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// RemoveAssignee removes one user's assignment from the task
func (h *TaskHandler) RemoveAssignee(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	task, err := h.taskService.RemoveAssignee(taskID, userID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

type setTagsRequest struct {
	Tags []string `json:"tags"`
}

// SetTags replaces the tag set of the task
func (h *TaskHandler) SetTags(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	var req setTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.SetTags(taskID, req.Tags, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

type linkProjectRequest struct {
	ProjectID *uint64 `json:"project_id"`
}

// LinkProject sets or clears the project a task belongs to
func (h *TaskHandler) LinkProject(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	var req linkProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.AssignToProject(taskID, req.ProjectID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ArchiveTask soft-archives a task
func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	task, err := h.taskService.ArchiveTask(taskID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UnarchiveTask restores an archived task
func (h *TaskHandler) UnarchiveTask(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	task, err := h.taskService.UnarchiveTask(taskID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask hard-deletes a task (HR admins only)
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, actor); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// GetHierarchy returns the parent chain and direct subtasks of a task
func (h *TaskHandler) GetHierarchy(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	hierarchy, err := h.taskService.GetTaskHierarchy(taskID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	response := dto.TaskHierarchyDTO{
		Task:     dto.ToTaskDTO(*hierarchy.Task),
		Subtasks: make([]dto.TaskListItemDTO, len(hierarchy.Subtasks)),
	}
	if hierarchy.Parent != nil {
		parent := dto.ToTaskDTO(*hierarchy.Parent)
		response.Parent = &parent
	}
	for i, subtask := range hierarchy.Subtasks {
		response.Subtasks[i] = dto.ToTaskListItemDTO(subtask)
	}

	c.JSON(http.StatusOK, response)
}

type addCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment appends a comment to a task
func (h *TaskHandler) AddComment(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	comment, err := h.taskService.AddComment(taskID, req.Body, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskCommentDTO(*comment))
}

// ListComments lists a task's comments
func (h *TaskHandler) ListComments(c *gin.Context) {
	actor, taskID, ok := taskRequestContext(c)
	if !ok {
		return
	}

	comments, err := h.taskService.ListComments(taskID, actor)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	dtos := make([]dto.TaskCommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = dto.ToTaskCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": dtos})
}

// taskRequestContext pulls the actor and the :id path parameter, writing the
// error response itself when either is missing.
func taskRequestContext(c *gin.Context) (*models.UserProfile, uint64, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return nil, 0, false
	}

	return actor, taskID, true
}
