package ownership

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := conn.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return conn
}

func seedUserWithProject(t *testing.T, conn *gorm.DB, email string) (models.User, models.Project) {
	t.Helper()

	user := models.User{Name: "Test", Email: email, PasswordHash: "x"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	project := models.Project{Title: "P", UserID: user.ID}
	if err := conn.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	return user, project
}

func TestProjectOwnedBy(t *testing.T) {
	conn := openTestDB(t)
	guard := NewGuard(conn)

	owner, project := seedUserWithProject(t, conn, "owner@x.com")
	other, _ := seedUserWithProject(t, conn, "other@x.com")

	got, err := guard.ProjectOwnedBy(project.ID, owner.ID)
	if err != nil {
		t.Fatalf("expected owner lookup to succeed, got %v", err)
	}
	if got.ID != project.ID {
		t.Fatalf("expected project %d, got %d", project.ID, got.ID)
	}

	if _, err := guard.ProjectOwnedBy(project.ID, other.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-owner, got %v", err)
	}

	// A nonexistent project is indistinguishable from an unowned one.
	if _, err := guard.ProjectOwnedBy(9999, owner.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for missing project, got %v", err)
	}
}

func TestTaskOwnershipIsTransitive(t *testing.T) {
	conn := openTestDB(t)
	guard := NewGuard(conn)

	owner, project := seedUserWithProject(t, conn, "owner@x.com")
	other, _ := seedUserWithProject(t, conn, "other@x.com")

	task := models.Task{Title: "T", Status: models.StatusTodo, DueDate: time.Now(), ProjectID: project.ID}
	if err := conn.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := guard.TaskOwnedBy(task.ID, owner.ID)
	if err != nil {
		t.Fatalf("expected task lookup to succeed for project owner, got %v", err)
	}
	if got.ID != task.ID {
		t.Fatalf("expected task %d, got %d", task.ID, got.ID)
	}

	if _, err := guard.TaskOwnedBy(task.ID, other.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-owner, got %v", err)
	}
}

func TestTaskOwnedByMissingTask(t *testing.T) {
	conn := openTestDB(t)
	guard := NewGuard(conn)

	owner, _ := seedUserWithProject(t, conn, "owner@x.com")

	if _, err := guard.TaskOwnedBy(9999, owner.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
