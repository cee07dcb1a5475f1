package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/payment"
)

type paymentRepository struct {
	db *DB
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *DB) *paymentRepository {
	return &paymentRepository{db: db}
}

// guardianOf resolves the billed student's guardian. Caller holds the lock.
func (repo *paymentRepository) guardianOf(pmt *payment.Payment) string {
	if stu, ok := repo.db.students[pmt.StudentID]; ok {
		return stu.GuardianID
	}
	return ""
}

func (repo *paymentRepository) detail(pmt *payment.Payment) payment.Detail {
	det := payment.Detail{Payment: *pmt}
	if stu, ok := repo.db.students[pmt.StudentID]; ok {
		det.StudentName = stu.Name
		if usr, ok := repo.db.users[stu.GuardianID]; ok {
			det.GuardianID = usr.ID
			det.GuardianName = usr.Name
			det.GuardianEmail = usr.Email
			det.GuardianPhone = usr.Phone
		}
	}
	return det
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment, exec ...core.DBExecutor) (payment.Payment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	pmt.ID = uuid.New().String()
	repo.db.payments[pmt.ID] = &pmt
	return pmt, nil
}

func (repo *paymentRepository) GetPayment(ctx context.Context, filter payment.GetFilter, exec ...core.DBExecutor) (payment.Payment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	pmt, ok := repo.db.payments[filter.ID]
	if !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	if filter.GuardianID != "" && repo.guardianOf(pmt) != filter.GuardianID {
		return payment.Payment{}, payment.ErrNotFound
	}
	return *pmt, nil
}

func (repo *paymentRepository) GetPaymentDetail(ctx context.Context, id string, exec ...core.DBExecutor) (payment.Detail, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	pmt, ok := repo.db.payments[id]
	if !ok {
		return payment.Detail{}, payment.ErrNotFound
	}
	return repo.detail(pmt), nil
}

func (repo *paymentRepository) match(pmt *payment.Payment, filter *payment.QueryFilter) bool {
	if filter == nil {
		return true
	}
	if filter.StudentID != "" && pmt.StudentID != filter.StudentID {
		return false
	}
	if filter.GuardianID != "" && repo.guardianOf(pmt) != filter.GuardianID {
		return false
	}
	if filter.Status != "" && pmt.Status != filter.Status {
		return false
	}
	if !filter.DueFrom.IsZero() && pmt.DueDate.Before(filter.DueFrom) {
		return false
	}
	if !filter.DueTo.IsZero() && !pmt.DueDate.Before(filter.DueTo) {
		return false
	}
	return true
}

func (repo *paymentRepository) QueryPayments(ctx context.Context, filter *payment.QueryFilter, exec ...core.DBExecutor) ([]payment.Payment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var pmts []payment.Payment
	for _, pmt := range repo.db.payments {
		if repo.match(pmt, filter) {
			pmts = append(pmts, *pmt)
		}
	}
	sort.Slice(pmts, func(i, j int) bool { return pmts[i].DueDate.Before(pmts[j].DueDate) })
	return pmts, nil
}

func (repo *paymentRepository) QueryPaymentDetails(ctx context.Context, filter *payment.QueryFilter, exec ...core.DBExecutor) ([]payment.Detail, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var dets []payment.Detail
	for _, pmt := range repo.db.payments {
		if repo.match(pmt, filter) {
			dets = append(dets, repo.detail(pmt))
		}
	}
	sort.Slice(dets, func(i, j int) bool { return dets[i].DueDate.Before(dets[j].DueDate) })
	return dets, nil
}

func (repo *paymentRepository) MarkPaymentPaid(ctx context.Context, id string, paidAt time.Time, exec ...core.DBExecutor) (payment.Payment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	pmt, ok := repo.db.payments[id]
	if !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	pmt.Status = payment.StatusPaid
	pmt.PaidAt = &paidAt
	return *pmt, nil
}
