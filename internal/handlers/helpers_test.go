package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/taskdeck-dev/taskdeck/internal/auth"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/router"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("init jwt secret: %v", err)
	}

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := conn.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return router.NewRouter(conn), conn
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response list %q: %v", w.Body.String(), err)
	}
	return body
}

// registerAndLogin creates a user through the API and returns a live token.
func registerAndLogin(t *testing.T, r *gin.Engine, name, email, password string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, w.Code, w.Body.String())
	}

	token, ok := decodeBody(t, w)["token"].(string)
	if !ok || token == "" {
		t.Fatalf("login %s: missing token in response", email)
	}
	return token
}

func createProject(t *testing.T, r *gin.Engine, token, title string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"title":       title,
		"description": "",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	id, ok := decodeBody(t, w)["id"].(float64)
	if !ok {
		t.Fatal("create project: missing id in response")
	}
	return uint(id)
}

func createTask(t *testing.T, r *gin.Engine, token string, projectID uint, title string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/tasks", token, gin.H{
		"title":     title,
		"dueDate":   "2025-07-02",
		"projectId": projectID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	id, ok := decodeBody(t, w)["id"].(float64)
	if !ok {
		t.Fatal("create task: missing id in response")
	}
	return uint(id)
}
