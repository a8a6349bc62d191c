package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiorvanti/stride/internal/adapters/repository"
	"github.com/mfiorvanti/stride/internal/core/domain"
	"github.com/mfiorvanti/stride/internal/core/services"
)

func setupHabitRouter(userID string) (*gin.Engine, *services.HabitService) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryHabitRepository()
	svc := services.NewHabitService(repo)
	handler := NewHabitHandler(svc)

	router := gin.New()
	group := router.Group("")
	group.Use(asUser(userID))
	handler.RegisterRoutes(group)

	return router, svc
}

func TestHabitHandler_Create(t *testing.T) {
	t.Run("Success: returns 201 with the habit", func(t *testing.T) {
		router, _ := setupHabitRouter("u1")

		body, _ := json.Marshal(map[string]any{
			"title":    "Morning run",
			"weekdays": []int{1, 3, 5},
		})

		req, _ := http.NewRequest(http.MethodPost, "/habits", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var habit domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit))
		assert.NotEmpty(t, habit.ID)
		assert.Equal(t, domain.HabitFreqSpecificDays, habit.FrequencyType)
	})

	t.Run("Fail: 400 for missing title", func(t *testing.T) {
		router, _ := setupHabitRouter("u1")

		req, _ := http.NewRequest(http.MethodPost, "/habits", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 for out-of-range weekdays", func(t *testing.T) {
		router, _ := setupHabitRouter("u1")

		body, _ := json.Marshal(map[string]any{
			"title":    "Run",
			"weekdays": []int{9},
		})

		req, _ := http.NewRequest(http.MethodPost, "/habits", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHabitHandler_UpdateAndDelete(t *testing.T) {
	router, svc := setupHabitRouter("u1")

	habit, err := svc.Create(context.Background(), services.CreateHabitInput{UserID: "u1", Title: "Run"})
	require.NoError(t, err)

	t.Run("Update: 200 and new title", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"title": "Evening run"})

		req, _ := http.NewRequest(http.MethodPut, "/habits/"+habit.ID, bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Evening run")
	})

	t.Run("Update: 409 on stale version", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"title": "x", "version": 99})

		req, _ := http.NewRequest(http.MethodPut, "/habits/"+habit.ID, bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Delete: 204 then 404 on reads", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/habits/"+habit.ID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		req, _ = http.NewRequest(http.MethodGet, "/habits/"+habit.ID, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHabitHandler_OwnershipIsolation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryHabitRepository()
	svc := services.NewHabitService(repo)
	handler := NewHabitHandler(svc)

	owner := gin.New()
	ownerGroup := owner.Group("")
	ownerGroup.Use(asUser("u1"))
	handler.RegisterRoutes(ownerGroup)

	intruder := gin.New()
	intruderGroup := intruder.Group("")
	intruderGroup.Use(asUser("u2"))
	handler.RegisterRoutes(intruderGroup)

	habit, err := svc.Create(context.Background(), services.CreateHabitInput{UserID: "u1", Title: "Run"})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/habits/"+habit.ID, nil)
	w := httptest.NewRecorder()
	intruder.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ = http.NewRequest(http.MethodDelete, "/habits/"+habit.ID, nil)
	w = httptest.NewRecorder()
	intruder.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/habits/"+habit.ID, nil)
	w = httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
