// Package ownership answers whether an entity belongs, directly or through
// its parent project, to a given user. Every scoped read and mutation goes
// through a Guard before touching the row.
package ownership

import (
	"errors"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFoundOrForbidden deliberately collapses "does not exist" and
	// "exists but belongs to someone else" so callers cannot probe for
	// other users' resource ids.
	ErrNotFoundOrForbidden = errors.New("resource not found or not owned by user")

	// ErrTaskNotFound means the task row itself is absent.
	ErrTaskNotFound = errors.New("task not found")
)

type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// ProjectOwnedBy returns the project iff it exists and belongs to userID.
func (g *Guard) ProjectOwnedBy(projectID, userID uint) (models.Project, error) {
	var project models.Project

	err := g.db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFoundOrForbidden
		}
		return models.Project{}, err
	}

	return project, nil
}

// TaskOwnedBy loads the task and verifies its parent project belongs to
// userID. A missing task yields ErrTaskNotFound; an unowned parent yields
// ErrNotFoundOrForbidden.
func (g *Guard) TaskOwnedBy(taskID, userID uint) (models.Task, error) {
	var task models.Task

	err := g.db.First(&task, taskID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if _, err := g.ProjectOwnedBy(task.ProjectID, userID); err != nil {
		return models.Task{}, err
	}

	return task, nil
}
