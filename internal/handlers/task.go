package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/internal/logging"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/ownership"
	"github.com/taskdeck-dev/taskdeck/internal/types"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title     string `json:"title" binding:"required"`
	DueDate   string `json:"dueDate" binding:"required"`
	ProjectID uint   `json:"projectId" binding:"required"`
	Status    string `json:"status"`
}

type UpdateTaskRequest struct {
	Title   *string `json:"title"`
	Status  *string `json:"status"`
	DueDate *string `json:"dueDate"`
}

type TaskHandler struct {
	DB    *gorm.DB
	Guard *ownership.Guard
}

func NewTaskHandler(db *gorm.DB, guard *ownership.Guard) *TaskHandler {
	return &TaskHandler{DB: db, Guard: guard}
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	status := models.StatusTodo

	if body.Status != "" {
		status = models.TaskStatus(body.Status)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status"})
			return
		}
	}

	dueDate, err := parseDueDate(body.DueDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date"})
		return
	}

	// Creation against someone else's project is a plain 403. The client
	// already asserted the project id, so there is no existence to hide.
	if _, err := h.Guard.ProjectOwnedBy(body.ProjectID, userID); err != nil {
		if errors.Is(err, ownership.ErrNotFoundOrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Project not found or access denied"})
			return
		}
		logging.Logger.Errorf("Failed to check project ownership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	task := models.Task{
		Title:     body.Title,
		Status:    status,
		DueDate:   dueDate,
		ProjectID: body.ProjectID,
	}

	if err := h.DB.Create(&task).Error; err != nil {
		logging.Logger.Errorf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(task))
}

func (h *TaskHandler) ListByProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := parseID(ctx.Param("projectId"))

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied to project"})
		return
	}

	if _, err := h.Guard.ProjectOwnedBy(projectID, userID); err != nil {
		if errors.Is(err, ownership.ErrNotFoundOrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied to project"})
			return
		}
		logging.Logger.Errorf("Failed to check project ownership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	var tasks []models.Task

	if err := h.DB.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		logging.Logger.Errorf("Failed to list tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := []types.TaskResponse{}

	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	taskID, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	task, err := h.Guard.TaskOwnedBy(taskID, userID)

	if err != nil {
		h.respondTaskGuardError(ctx, err, "No permission to modify this task")
		return
	}

	if body.Title != nil {
		task.Title = *body.Title
	}

	if body.Status != nil {
		status := models.TaskStatus(*body.Status)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status"})
			return
		}
		task.Status = status
	}

	if body.DueDate != nil {
		dueDate, err := parseDueDate(*body.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date"})
			return
		}
		task.DueDate = dueDate
	}

	if err := h.DB.Save(&task).Error; err != nil {
		logging.Logger.Errorf("Failed to update task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	task, err := h.Guard.TaskOwnedBy(taskID, userID)

	if err != nil {
		h.respondTaskGuardError(ctx, err, "No permission to delete this task")
		return
	}

	if err := h.DB.Delete(&task).Error; err != nil {
		logging.Logger.Errorf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// respondTaskGuardError maps the guard's two failure modes onto the task
// routes' split: a missing task row is 404, an unowned parent project 403.
func (h *TaskHandler) respondTaskGuardError(ctx *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, ownership.ErrTaskNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, ownership.ErrNotFoundOrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": forbiddenMsg})
	default:
		logging.Logger.Errorf("Failed to check task ownership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
