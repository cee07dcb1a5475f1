package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/report"
	"github.com/Eddy-C127/dance-academy/core/user"
)

func Test_adminApi_dashboard(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	teacher := createUser(t, "Carla Mendez", "carla@test.cd", "s3cr3t", user.RoleTeacher, true)
	admin := createUser(t, "Diana Reyes", "admin@test.cd", "s3cr3t", user.RoleAdmin, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)
	emma := createStudent(t, "Emma Torres", "Ballet", "Intermediate", parent.ID)

	// two students marked in the same class today: one taught session
	now := time.Now().UTC()
	for _, att := range []attendance.Attendance{
		{StudentID: sofia.ID, TeacherID: teacher.ID, Class: "Ballet", Date: now, Status: attendance.StatusPresent},
		{StudentID: emma.ID, TeacherID: teacher.ID, Class: "Ballet", Date: now, Status: attendance.StatusLate},
	} {
		if _, err := attRepo.CreateAttendance(ctx, att); err != nil {
			t.Fatalf("CreateAttendance() failed: %v", err)
		}
	}

	if _, err := pmtRepo.CreatePayment(ctx, payment.Payment{
		StudentID: sofia.ID, Concept: "Monthly tuition", Amount: 120,
		DueDate: now.AddDate(0, 0, -5), Status: payment.StatusPending,
	}); err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}

	t.Run("admin required", func(t *testing.T) {
		for _, token := range []string{"", getToken(t, parent), getToken(t, teacher)} {
			req, rec := newAuthRequest(http.MethodGet, "/v1/admin/dashboard", token)
			app.ServeHTTP(rec, req)
			if token == "" {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			} else {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			}
		}
	})

	t.Run("weekly metrics", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/dashboard", getToken(t, admin))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var dash report.Dashboard
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))

		assert.True(t, dash.Week.Contains(now))
		assert.Equal(t, 2, dash.TotalStudents)
		assert.Equal(t, 1, dash.ClassesThisWeek)

		assert.Equal(t, 1, dash.AttendanceSummary.Present)
		assert.Equal(t, 1, dash.AttendanceSummary.Late)
		assert.Equal(t, 2, dash.AttendanceSummary.Total)

		if assert.Len(t, dash.Payroll, 1) {
			row := dash.Payroll[0]
			assert.Equal(t, teacher.ID, row.TeacherID)
			assert.Equal(t, 1, row.ClassesTaught)
			assert.Equal(t, 1.5, row.HoursWorked)
			assert.Equal(t, 225.0, row.WeeklyPay)
		}

		if assert.Len(t, dash.OverduePayments, 1) {
			over := dash.OverduePayments[0]
			assert.Equal(t, payment.StatusOverdue, over.Status)
			assert.Equal(t, parent.Name, over.GuardianName)
			assert.Equal(t, sofia.Name, over.StudentName)
		}
	})
}
