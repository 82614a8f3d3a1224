package types

import (
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TaskResponse struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	Status    models.TaskStatus `json:"status"`
	DueDate   time.Time         `json:"dueDate"`
	ProjectID uint              `json:"projectId"`
	CreatedAt time.Time         `json:"createdAt"`
}

type ProjectResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	UserID      uint           `json:"userId"`
	CreatedAt   time.Time      `json:"createdAt"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
}

func NewTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		DueDate:   task.DueDate,
		ProjectID: task.ProjectID,
		CreatedAt: task.CreatedAt,
	}
}

func NewProjectResponse(project models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		UserID:      project.UserID,
		CreatedAt:   project.CreatedAt,
	}

	for _, task := range project.Tasks {
		resp.Tasks = append(resp.Tasks, NewTaskResponse(task))
	}

	return resp
}
