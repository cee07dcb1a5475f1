package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Eddy-C127/dance-academy/core/evaluation"
	"github.com/Eddy-C127/dance-academy/core/student"
	"github.com/Eddy-C127/dance-academy/core/user"
)

func Test_evaluationApi_create(t *testing.T) {
	app := setup(t)

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	teacher := createUser(t, "Carla Mendez", "carla@test.cd", "s3cr3t", user.RoleTeacher, true)
	admin := createUser(t, "Diana Reyes", "admin@test.cd", "s3cr3t", user.RoleAdmin, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)

	perfect := marshalObj(t, map[string]interface{}{
		"student_id":    sofia.ID,
		"uniform":       "complete",
		"discipline":    5,
		"participation": 9,
		"progress":      "outstanding",
		"comments":      "Nailed the pirouette.",
	})

	t.Run("teacher required", func(t *testing.T) {
		for _, token := range []string{getToken(t, parent), getToken(t, admin)} {
			req, rec := newAuthRequest(http.MethodPost, "/v1/evaluations", token, perfect)
			app.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		}
	})

	t.Run("perfect evaluation awards 70 points", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/evaluations", getToken(t, teacher), perfect)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var res evaluation.Result
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, 70, res.PointsAwarded)
		assert.Equal(t, teacher.ID, res.TeacherID)

		refreshed, err := stuRepo.GetStudent(context.Background(), student.GetFilter{ID: sofia.ID})
		assert.NoError(t, err)
		assert.Equal(t, 70, refreshed.Points)
	})

	t.Run("plain evaluation awards nothing", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{
			"student_id":    sofia.ID,
			"uniform":       "incomplete",
			"discipline":    3,
			"participation": 4,
			"progress":      "expected",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/evaluations", getToken(t, teacher), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var res evaluation.Result
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Zero(t, res.PointsAwarded)

		refreshed, err := stuRepo.GetStudent(context.Background(), student.GetFilter{ID: sofia.ID})
		assert.NoError(t, err)
		assert.Equal(t, 70, refreshed.Points) // unchanged
	})

	t.Run("unknown progress rejected", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{
			"student_id": sofia.ID,
			"uniform":    "complete",
			"discipline": 5,
			"progress":   "stellar",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/evaluations", getToken(t, teacher), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_evaluationApi_query(t *testing.T) {
	app := setup(t)

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	teacher := createUser(t, "Carla Mendez", "carla@test.cd", "s3cr3t", user.RoleTeacher, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)

	body := marshalObj(t, map[string]interface{}{
		"student_id": sofia.ID,
		"uniform":    "complete",
		"discipline": 4,
		"progress":   "expected",
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/evaluations", getToken(t, teacher), body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/evaluations")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("teacher sees own submissions", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/evaluations", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var evals []evaluation.Evaluation
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &evals))
		if assert.Len(t, evals, 1) {
			assert.Empty(t, evals[0].Comments)
			assert.Equal(t, 5, evals[0].Participation) // form default
		}
	})
}
