package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/mfiorvanti/stride/internal/adapters/handler/http"
	"github.com/mfiorvanti/stride/internal/adapters/repository"
	"github.com/mfiorvanti/stride/internal/core/domain"
	"github.com/mfiorvanti/stride/internal/core/services"
	"github.com/mfiorvanti/stride/internal/core/workers"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "stride_user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "secret"
	}
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "stride_db"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping e2e test (database down): %v", err)
	}
	return db
}

func setupTestRouter(t *testing.T, db *sqlx.DB) http.Handler {
	userRepo := repository.NewPostgresUserRepository(db.DB)
	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)
	goalRepo := repository.NewPostgresGoalRepository(db)
	entryRepo := repository.NewPostgresEntryRepository(db)

	streakWorker := workers.NewStreakWorker(habitRepo, completionRepo)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	t.Cleanup(stopWorker)
	streakWorker.Start(workerCtx)

	tokenService := services.NewTokenService("e2e-secret", "stride-e2e", 15*time.Minute, time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	habitService := services.NewHabitService(habitRepo)
	completionService := services.NewCompletionService(completionRepo, habitRepo, streakWorker)
	goalService := services.NewGoalService(goalRepo, entryRepo)
	entryService := services.NewEntryService(entryRepo, goalRepo, goalService)
	statsService := services.NewStatsService(habitRepo, completionRepo, goalRepo, entryRepo)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		GoalHandler:       adapterHTTP.NewGoalHandler(goalService),
		EntryHandler:      adapterHTTP.NewEntryHandler(entryService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		TokenService:      tokenService,
		DB:                db,
		StartTime:         time.Now(),
	})
}

func doJSON(router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_UserLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	defer db.Close()

	_, err := db.Exec("TRUNCATE TABLE users CASCADE")
	require.NoError(t, err, "Failed to truncate users table")

	router := setupTestRouter(t, db)

	email := "e2e@stride.app"
	password := "SuperSecret123!"
	var accessToken string
	var habitID string

	t.Run("1. Register", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email":    email,
			"password": password,
			"timezone": "Europe/Rome",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("2. Login", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    email,
			"password": password,
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.AccessToken)
		accessToken = resp.AccessToken
	})

	t.Run("3. Create habit", func(t *testing.T) {
		require.NotEmpty(t, accessToken, "Login step failed")

		w := doJSON(router, http.MethodPost, "/api/v1/habits", accessToken, map[string]any{
			"title":    "Morning run",
			"weekdays": []int{1, 2, 3, 4, 5},
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var habit domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit))
		require.NotEmpty(t, habit.ID)
		habitID = habit.ID
	})

	t.Run("4. Log completions", func(t *testing.T) {
		require.NotEmpty(t, habitID, "Create step failed")

		now := time.Now().UTC()
		for i := 0; i < 3; i++ {
			w := doJSON(router, http.MethodPost, "/api/v1/habits/"+habitID+"/completions", accessToken, map[string]any{
				"completion_date": now.AddDate(0, 0, -i).Format(time.RFC3339),
			})
			assert.Equal(t, http.StatusCreated, w.Code)
		}
	})

	t.Run("5. Streak is recomputed", func(t *testing.T) {
		require.NotEmpty(t, habitID, "Create step failed")

		// The streak worker updates asynchronously.
		deadline := time.Now().Add(3 * time.Second)
		for {
			w := doJSON(router, http.MethodGet, "/api/v1/habits/"+habitID+"/streak", accessToken, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var view domain.HabitStreakView
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
			if view.CurrentStreak == 3 || time.Now().After(deadline) {
				assert.Equal(t, 3, view.CurrentStreak)
				assert.Equal(t, 3, view.TotalCompletions)
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
	})

	t.Run("6. Goal with entries and projection", func(t *testing.T) {
		deadline := time.Now().UTC().AddDate(0, 0, 30)

		w := doJSON(router, http.MethodPost, "/api/v1/goals", accessToken, map[string]any{
			"goal_type":    "TARGET_BASED",
			"title":        "Read pages",
			"unit":         "pages",
			"target_value": 100,
			"deadline":     deadline.Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var goal domain.Goal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal))

		w = doJSON(router, http.MethodPost, "/api/v1/goals/"+goal.ID+"/entries", accessToken, map[string]any{
			"value":      40,
			"entry_date": time.Now().UTC().Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, http.MethodGet, "/api/v1/goals/"+goal.ID+"/stats", accessToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var view domain.GoalProgressView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, 40.0, view.TotalProgress)
		require.NotNil(t, view.Projection)
	})

	t.Run("7. Unauthenticated requests are rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/habits", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
