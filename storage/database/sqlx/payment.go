package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/payment"
)

const (
	paymentColumns = "id, student_id, concept, amount, due_date, paid_at, status"

	paymentDetailQuery = `SELECT
			p.id, p.student_id, p.concept, p.amount, p.due_date, p.paid_at, p.status,
			s.name AS student_name,
			u.id AS guardian_id, u.name AS guardian_name, u.email AS guardian_email, u.phone AS guardian_phone
		FROM payments p
		JOIN students s ON s.id = p.student_id
		JOIN users u ON u.id = s.guardian_id`
)

type paymentRepository struct {
	repository
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(exec core.DBExecutor) *paymentRepository {
	return &paymentRepository{repository{exec: exec}}
}

func (repo paymentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return payment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment, exec ...core.DBExecutor) (payment.Payment, error) {
	pmt.ID = uuid.New().String()
	q := `INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		pmt.ID, pmt.StudentID, pmt.Concept, pmt.Amount, pmt.DueDate, pmt.PaidAt, pmt.Status)
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return pmt, nil
}

func (repo paymentRepository) GetPayment(ctx context.Context, filter payment.GetFilter, exec ...core.DBExecutor) (payment.Payment, error) {
	if _, err := uuid.Parse(filter.ID); err != nil {
		return payment.Payment{}, payment.ErrNotFound
	}

	q := "SELECT " + paymentColumns + " FROM payments WHERE id = $1"
	args := []interface{}{filter.ID}
	if filter.GuardianID != "" {
		q = `SELECT p.id, p.student_id, p.concept, p.amount, p.due_date, p.paid_at, p.status
			FROM payments p
			JOIN students s ON s.id = p.student_id
			WHERE p.id = $1 AND s.guardian_id = $2`
		args = append(args, filter.GuardianID)
	}

	var pmt payment.Payment
	if err := repo.getExec(exec).GetContext(ctx, &pmt, q, args...); err != nil {
		return payment.Payment{}, repo.trapNoRowsErr(err, "finding payment")
	}
	return pmt, nil
}

func (repo paymentRepository) GetPaymentDetail(ctx context.Context, id string, exec ...core.DBExecutor) (payment.Detail, error) {
	if _, err := uuid.Parse(id); err != nil {
		return payment.Detail{}, payment.ErrNotFound
	}

	var det payment.Detail
	if err := repo.getExec(exec).GetContext(ctx, &det, paymentDetailQuery+" WHERE p.id = $1", id); err != nil {
		return payment.Detail{}, repo.trapNoRowsErr(err, "finding payment detail")
	}
	return det, nil
}

func paymentFilterClauses(filter *payment.QueryFilter, prefix string) ([]string, []interface{}) {
	var clauses []string
	var args []interface{}
	if filter == nil {
		return clauses, args
	}
	if filter.StudentID != "" {
		clauses = append(clauses, prefix+"student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		clauses = append(clauses, prefix+"status = ?")
		args = append(args, filter.Status)
	}
	if !filter.DueFrom.IsZero() {
		clauses = append(clauses, prefix+"due_date >= ?")
		args = append(args, filter.DueFrom.UTC())
	}
	if !filter.DueTo.IsZero() {
		clauses = append(clauses, prefix+"due_date < ?")
		args = append(args, filter.DueTo.UTC())
	}
	return clauses, args
}

func (repo paymentRepository) QueryPayments(ctx context.Context, filter *payment.QueryFilter, exec ...core.DBExecutor) ([]payment.Payment, error) {
	q := `SELECT p.id, p.student_id, p.concept, p.amount, p.due_date, p.paid_at, p.status
		FROM payments p`
	clauses, args := paymentFilterClauses(filter, "p.")

	if filter != nil && filter.GuardianID != "" {
		q += " JOIN students s ON s.id = p.student_id"
		clauses = append(clauses, "s.guardian_id = ?")
		args = append(args, filter.GuardianID)
	}
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY p.due_date ASC"

	q, args, err := rebind(q, args...)
	if err != nil {
		return nil, err
	}
	var pmts []payment.Payment
	if err := repo.getExec(exec).SelectContext(ctx, &pmts, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	return pmts, nil
}

func (repo paymentRepository) QueryPaymentDetails(ctx context.Context, filter *payment.QueryFilter, exec ...core.DBExecutor) ([]payment.Detail, error) {
	q := paymentDetailQuery
	clauses, args := paymentFilterClauses(filter, "p.")

	if filter != nil && filter.GuardianID != "" {
		clauses = append(clauses, "s.guardian_id = ?")
		args = append(args, filter.GuardianID)
	}
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY p.due_date ASC"

	q, args, err := rebind(q, args...)
	if err != nil {
		return nil, err
	}
	var dets []payment.Detail
	if err := repo.getExec(exec).SelectContext(ctx, &dets, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying payment details")
	}
	return dets, nil
}

func (repo paymentRepository) MarkPaymentPaid(ctx context.Context, id string, paidAt time.Time, exec ...core.DBExecutor) (payment.Payment, error) {
	exe := repo.getExec(exec)
	q := "UPDATE payments SET status = $2, paid_at = $3 WHERE id = $1"
	res, err := exe.ExecContext(ctx, q, id, payment.StatusPaid, paidAt)
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "settling payment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return payment.Payment{}, payment.ErrNotFound
	}

	var pmt payment.Payment
	if err := exe.GetContext(ctx, &pmt, "SELECT "+paymentColumns+" FROM payments WHERE id = $1", id); err != nil {
		return payment.Payment{}, errors.Wrap(err, "reloading payment")
	}
	return pmt, nil
}
