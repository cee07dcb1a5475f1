package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/user"
	emailsvc "github.com/Eddy-C127/dance-academy/services/email"
)

func Test_paymentApi_query(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	other := createUser(t, "Miguel Torres", "miguel@test.cd", "s3cr3t", user.RoleParent, true)
	teacher := createUser(t, "Carla Mendez", "carla@test.cd", "s3cr3t", user.RoleTeacher, true)
	admin := createUser(t, "Diana Reyes", "admin@test.cd", "s3cr3t", user.RoleAdmin, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)
	emma := createStudent(t, "Emma Torres", "Ballet", "Intermediate", other.ID)

	now := time.Now().UTC()
	for _, pmt := range []payment.Payment{
		{StudentID: sofia.ID, Concept: "Monthly tuition", Amount: 120, DueDate: now.AddDate(0, 0, -5), Status: payment.StatusPending},
		{StudentID: sofia.ID, Concept: "Recital costume", Amount: 45, DueDate: now.AddDate(0, 0, 10), Status: payment.StatusPending},
		{StudentID: emma.ID, Concept: "Monthly tuition", Amount: 120, DueDate: now.AddDate(0, 0, 3), Status: payment.StatusPending},
	} {
		if _, err := pmtRepo.CreatePayment(ctx, pmt); err != nil {
			t.Fatalf("CreatePayment() failed: %v", err)
		}
	}

	t.Run("parent sees own children's charges, overdue derived", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/payments", getToken(t, parent))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var pmts []payment.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pmts))
		if assert.Len(t, pmts, 2) {
			// due soonest first, the past-due one leads
			assert.Equal(t, payment.StatusOverdue, pmts[0].Status)
			assert.Equal(t, payment.StatusPending, pmts[1].Status)
		}
	})

	t.Run("admin sees everything", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/payments", getToken(t, admin))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var pmts []payment.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pmts))
		assert.Len(t, pmts, 3)
	})

	t.Run("teachers have no billing view", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/payments", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func Test_paymentApi_pay(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	other := createUser(t, "Miguel Torres", "miguel@test.cd", "s3cr3t", user.RoleParent, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)

	pmt, err := pmtRepo.CreatePayment(ctx, payment.Payment{
		StudentID: sofia.ID, Concept: "Monthly tuition", Amount: 120,
		DueDate: time.Now().UTC().AddDate(0, 0, 5), Status: payment.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}

	t.Run("another family's payment is not found", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/payments/"+pmt.ID+"/pay", getToken(t, other))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("guardian settles own payment", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/payments/"+pmt.ID+"/pay", getToken(t, parent))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var paid payment.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paid))
		assert.Equal(t, payment.StatusPaid, paid.Status)
		assert.NotNil(t, paid.PaidAt)
	})

	t.Run("settling twice is rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/payments/"+pmt.ID+"/pay", getToken(t, parent))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_paymentApi_create(t *testing.T) {
	app := setup(t)

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	admin := createUser(t, "Diana Reyes", "admin@test.cd", "s3cr3t", user.RoleAdmin, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)

	body := marshalObj(t, map[string]interface{}{
		"student_id": sofia.ID,
		"concept":    "Monthly tuition - September",
		"amount":     120,
		"due_date":   time.Now().UTC().AddDate(0, 1, 0).Format(time.RFC3339),
	})

	t.Run("admin required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/payments", getToken(t, parent), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin raises a charge", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/payments", getToken(t, admin), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var pmt payment.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pmt))
		assert.Equal(t, payment.StatusPending, pmt.Status)
		assert.Nil(t, pmt.PaidAt)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		bad := marshalObj(t, map[string]interface{}{
			"student_id": sofia.ID,
			"concept":    "Freebie",
			"amount":     0,
			"due_date":   time.Now().UTC().Format(time.RFC3339),
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/payments", getToken(t, admin), bad)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_adminApi_remindPayment(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	parent := createUser(t, "Laura Gomez", "laura@test.cd", "s3cr3t", user.RoleParent, true)
	admin := createUser(t, "Diana Reyes", "admin@test.cd", "s3cr3t", user.RoleAdmin, true)

	sofia := createStudent(t, "Sofia Gomez", "Ballet", "Intermediate", parent.ID)

	pmt, err := pmtRepo.CreatePayment(ctx, payment.Payment{
		StudentID: sofia.ID, Concept: "Monthly tuition", Amount: 120,
		DueDate: time.Now().UTC().AddDate(0, 0, -5), Status: payment.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}

	t.Run("admin required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/payments/"+pmt.ID+"/remind", getToken(t, parent))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("reminder reaches the guardian", func(t *testing.T) {
		sentBefore := len(emailsvc.SentMessages)

		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/payments/"+pmt.ID+"/remind", getToken(t, admin))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		if assert.Len(t, emailsvc.SentMessages, sentBefore+1) {
			msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
			assert.Equal(t, "Payment Reminder", msg.Subject)
			if assert.Len(t, msg.To, 1) {
				assert.Equal(t, parent.Email, msg.To[0].Address)
			}
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/payments/lol/remind", getToken(t, admin))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
