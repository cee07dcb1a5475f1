package payment

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
)

var (
	// errors
	ErrNotFound    = errors.New("payment not found")
	ErrAlreadyPaid = errors.New("payment already settled")
)

type (
	Repository interface {
		CreatePayment(ctx context.Context, pmt Payment, exec ...core.DBExecutor) (Payment, error)
		GetPayment(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Payment, error)
		GetPaymentDetail(ctx context.Context, id string, exec ...core.DBExecutor) (Detail, error)
		// QueryPayments returns matches ordered by due date, soonest first.
		QueryPayments(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Payment, error)
		QueryPaymentDetails(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Detail, error)
		MarkPaymentPaid(ctx context.Context, id string, paidAt time.Time, exec ...core.DBExecutor) (Payment, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		nowFunc func() time.Time
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, nowFunc: func() time.Time { return time.Now().UTC() }}
}

func (svc *Service) Create(ctx context.Context, np NewPayment) (Payment, error) {
	pmt := Payment{
		StudentID: np.StudentID,
		Concept:   np.Concept,
		Amount:    np.Amount,
		DueDate:   np.DueDate.UTC(),
		Status:    StatusPending,
	}
	return svc.repo.CreatePayment(ctx, pmt)
}

// QueryForGuardian lists a guardian's children's payments, due soonest first,
// with overdue status derived for anything pending past its due date.
func (svc *Service) QueryForGuardian(ctx context.Context, guardianID string) ([]Payment, error) {
	pmts, err := svc.repo.QueryPayments(ctx, &QueryFilter{GuardianID: guardianID})
	if err != nil {
		return nil, err
	}
	now := svc.nowFunc()
	for i, p := range pmts {
		pmts[i] = p.WithDerivedStatus(now)
	}
	return pmts, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Payment, error) {
	pmts, err := svc.repo.QueryPayments(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := svc.nowFunc()
	for i, p := range pmts {
		pmts[i] = p.WithDerivedStatus(now)
	}
	return pmts, nil
}

// Overdue lists unsettled payments past their due date, soonest due first,
// joined with the guardian contact details the admin needs to chase them.
func (svc *Service) Overdue(ctx context.Context) ([]Detail, error) {
	now := svc.nowFunc()
	dets, err := svc.repo.QueryPaymentDetails(ctx, &QueryFilter{Status: StatusPending, DueTo: now})
	if err != nil {
		return nil, err
	}
	for i, det := range dets {
		dets[i].Payment = det.WithDerivedStatus(now)
	}
	return dets, nil
}

// Pay settles a payment on behalf of a guardian. The guardian must be the
// parent of the billed student; anyone else gets ErrNotFound, the same as a
// nonexistent payment, so the endpoint leaks nothing about other families.
func (svc *Service) Pay(ctx context.Context, id, guardianID string) (Payment, error) {
	pmt, err := svc.repo.GetPayment(ctx, GetFilter{ID: id, GuardianID: guardianID})
	if err != nil {
		return Payment{}, err
	}
	if pmt.IsPaid() {
		return Payment{}, ErrAlreadyPaid
	}
	return svc.repo.MarkPaymentPaid(ctx, pmt.ID, svc.nowFunc())
}

// Remind emails the guardian of an unsettled payment.
func (svc *Service) Remind(ctx context.Context, id string) error {
	det, err := svc.repo.GetPaymentDetail(ctx, id)
	if err != nil {
		return err
	}
	if det.IsPaid() {
		return ErrAlreadyPaid
	}
	det.Payment = det.WithDerivedStatus(svc.nowFunc())
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: det.GuardianName, Address: det.GuardianEmail}},
		Subject:      "Payment Reminder",
		TemplateName: "payment-reminder",
		TemplateData: struct{ Detail Detail }{det},
	})
	return nil
}
