package payment

import (
	"time"

	"github.com/Eddy-C127/dance-academy/core"
)

// Payment statuses. Overdue is never stored; it is derived whenever a
// pending payment is read after its due date has passed.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

type Payment struct {
	ID        string     `json:"id" db:"id"`
	StudentID string     `json:"student_id" db:"student_id"`
	Concept   string     `json:"concept" db:"concept"`
	Amount    float64    `json:"amount" db:"amount"`
	DueDate   time.Time  `json:"due_date" db:"due_date"` // UTC
	PaidAt    *time.Time `json:"paid_at" db:"paid_at"`   // UTC, nil until paid
	Status    string     `json:"status" db:"status"`
}

// WithDerivedStatus returns the payment with its effective status at `now`.
// The stored row keeps "pending"; lateness is a property of when you look.
func (p Payment) WithDerivedStatus(now time.Time) Payment {
	if p.Status == StatusPending && p.DueDate.Before(now) {
		p.Status = StatusOverdue
	}
	return p
}

func (p Payment) IsPaid() bool { return p.Status == StatusPaid }

// Detail is a payment joined with the student it bills and the guardian
// who owes it, for reminder emails and the admin dashboard.
type Detail struct {
	Payment
	StudentName   string `json:"student_name" db:"student_name"`
	GuardianID    string `json:"guardian_id" db:"guardian_id"`
	GuardianName  string `json:"guardian_name" db:"guardian_name"`
	GuardianEmail string `json:"guardian_email" db:"guardian_email"`
	GuardianPhone string `json:"guardian_phone" db:"guardian_phone"`
}

// NewPayment contains information needed to bill a student.
type NewPayment struct {
	StudentID string    `json:"student_id" validate:"required"`
	Concept   string    `json:"concept" validate:"required"`
	Amount    float64   `json:"amount" validate:"required,gt=0"`
	DueDate   time.Time `json:"due_date" validate:"required"`
}

func (np *NewPayment) Validate() error {
	np.Concept = core.CleanString(np.Concept)
	return core.Validate.Struct(np)
}

type QueryFilter struct {
	StudentID  string
	GuardianID string
	Status     string
	DueFrom    time.Time
	DueTo      time.Time
}

// GetFilter selects a single payment. GuardianID, when set, restricts the
// match to payments billed to that guardian's own children.
type GetFilter struct {
	ID         string
	GuardianID string
}
