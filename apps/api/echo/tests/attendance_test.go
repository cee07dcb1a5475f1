package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/user"
)

func Test_attendanceApi_record(t *testing.T) {
	app := setup(t)

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	teacher := createUser(t, "Carla Mendez", "carla@test.cd", "s3cr3t", user.RoleTeacher, true)
	admin := createUser(t, "Diana Reyes", "admin@test.cd", "s3cr3t", user.RoleAdmin, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)

	body := marshalObj(t, map[string]string{"student_id": sofia.ID, "status": "present"})

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "parents cannot record", token: getToken(t, parent),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{
			// recording is the teacher's job, even the admin does not get it
			name: "admins cannot record", token: getToken(t, admin),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{name: "bad status", token: getToken(t, teacher), body: marshalObj(t, map[string]string{"student_id": sofia.ID, "status": "lol"}), wantCode: http.StatusBadRequest},
		{name: "teacher records", token: getToken(t, teacher), body: body, wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.name == "teacher records" {
				assert.Equal(t, http.StatusCreated, rec.Code)
				var att attendance.Attendance
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &att))
				assert.Equal(t, teacher.ID, att.TeacherID)
				assert.Equal(t, attendance.StatusPresent, att.Status)
				assert.Equal(t, "Ballet Intermediate - Group A", att.Class)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("second submission updates the day's record", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", getToken(t, teacher),
			marshalObj(t, map[string]string{"student_id": sofia.ID, "status": "late"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		atts, err := attRepo.QueryAttendance(context.Background(), &attendance.QueryFilter{StudentID: sofia.ID})
		assert.NoError(t, err)
		if assert.Len(t, atts, 1) {
			assert.Equal(t, attendance.StatusLate, atts[0].Status)
		}
	})
}

func Test_attendanceApi_query(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	other := createUser(t, "Miguel Torres", "miguel@test.cd", "s3cr3t", user.RoleParent, true)
	teacher := createUser(t, "Carla Mendez", "carla@test.cd", "s3cr3t", user.RoleTeacher, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)
	emma := createStudent(t, "Emma Torres", "Ballet", "Intermediate", other.ID)

	now := time.Now().UTC()
	for _, att := range []attendance.Attendance{
		{StudentID: sofia.ID, TeacherID: teacher.ID, Class: "Ballet", Date: now.AddDate(0, 0, -1), Status: attendance.StatusPresent},
		{StudentID: emma.ID, TeacherID: teacher.ID, Class: "Ballet", Date: now.AddDate(0, 0, -1), Status: attendance.StatusAbsent},
	} {
		if _, err := attRepo.CreateAttendance(ctx, att); err != nil {
			t.Fatalf("CreateAttendance() failed: %v", err)
		}
	}

	t.Run("teacher sees all records", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var atts []attendance.Attendance
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &atts))
		assert.Len(t, atts, 2)
	})

	t.Run("parent sees own child", func(t *testing.T) {
		q := url.Values{"student_id": {sofia.ID}}
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance?"+q.Encode(), getToken(t, parent))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var atts []attendance.Attendance
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &atts))
		assert.Len(t, atts, 1)
	})

	t.Run("parent cannot see another family's child", func(t *testing.T) {
		q := url.Values{"student_id": {emma.ID}}
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance?"+q.Encode(), getToken(t, parent))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("parent without a student filter gets nothing", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance", getToken(t, parent))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}
