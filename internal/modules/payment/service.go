package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"

	"kayexpress/internal/domain"
	"kayexpress/internal/notification"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"
)

// Service charges bookings through the gateway and settles the results
// that come back on the webhook or through client polling.
type Service struct {
	payments paymentRepo
	bookings bookingReader
	trips    tripReader
	users    userReader
	gateway  Gateway
	mail     notification.Sender
	loggerf  func(format string, args ...interface{})
}

func NewService(payments paymentRepo, bookings bookingReader, trips tripReader, users userReader, gateway Gateway, mail notification.Sender, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if mail == nil {
		mail = notification.Noop{}
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		trips:    trips,
		users:    users,
		gateway:  gateway,
		mail:     mail,
		loggerf:  loggerf,
	}
}

// Initiate creates a payment for a pending booking and hands it to the
// gateway. The payment sits in processing until the gateway reports
// back on the webhook, or until the client polls Verify.
func (s *Service) Initiate(ctx context.Context, userID int64, admin bool, req InitiatePaymentRequest) (*domain.Payment, error) {
	method := domain.PaymentMethod(req.Method)
	if !validMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.Method)
	}
	if method == domain.PayMobileMoney && (req.MomoProvider == "" || req.MomoNumber == "") {
		return nil, fmt.Errorf("%w: mobile money payments need a provider and a wallet number", ErrValidation)
	}

	b, err := s.bookings.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(req.BookingReference)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !admin && b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status != domain.BookingPending {
		return nil, fmt.Errorf("%w: booking is %s", ErrNotPayable, b.Status)
	}

	now := time.Now()
	if b.PaymentExpired(now) {
		return nil, ErrPaymentDeadline
	}

	p := &domain.Payment{
		BookingID:    b.ID,
		UserID:       b.UserID,
		Amount:       b.TotalAmount,
		Method:       method,
		MomoProvider: domain.MomoProvider(req.MomoProvider),
		MomoNumber:   strings.TrimSpace(req.MomoNumber),
		Status:       domain.PaymentRecordPending,
	}

	// The reference is the only unique column on payments, so a
	// duplicate key can only mean the random draw collided. Draw again.
	for attempt := 0; ; attempt++ {
		p.Reference = refnum.Random("PAY", now, 8)

		err = s.payments.Create(ctx, p)
		if err == nil {
			break
		}
		if !refnum.IsDuplicateKey(err) {
			return nil, err
		}
		if attempt+1 >= refnum.MaxAttempts {
			return nil, refnum.ErrDuplicateReference
		}
	}

	charge, err := s.gateway.Charge(ctx, ChargeRequest{
		Reference:    p.Reference,
		Amount:       p.Amount,
		Currency:     "GHS",
		Method:       p.Method,
		MomoProvider: p.MomoProvider,
		MomoNumber:   p.MomoNumber,
	})
	if err != nil {
		s.loggerf("level=error msg=gateway charge failed reference=%s err=%v", p.Reference, err)
		if ferr := s.payments.MarkFailed(ctx, p.Reference, "gateway unreachable"); ferr != nil {
			s.loggerf("level=error msg=could not mark payment failed reference=%s err=%v", p.Reference, ferr)
		}
		return nil, fmt.Errorf("gateway charge: %w", err)
	}

	if err := s.payments.MarkProcessing(ctx, p.ID, charge.TxnID); err != nil {
		return nil, err
	}
	p.Status = domain.PaymentRecordProcessing
	p.GatewayTxnID = charge.TxnID

	s.loggerf("level=info msg=payment initiated reference=%s booking=%s amount=%.2f txn_id=%s", p.Reference, b.Reference, p.Amount, charge.TxnID)
	return p, nil
}

// HandleWebhook settles a payment from a gateway callback. The
// signature was checked by middleware, but replays and races with
// Verify are still possible, so settlement stays idempotent.
func (s *Service) HandleWebhook(ctx context.Context, raw []byte) (*domain.Payment, error) {
	ref := gjson.GetBytes(raw, "payment_reference").String()
	txnID := gjson.GetBytes(raw, "transaction_id").String()
	status := gjson.GetBytes(raw, "status").String()

	if ref == "" || status == "" {
		return nil, fmt.Errorf("%w: payment_reference and status are required", ErrValidation)
	}

	p, err := s.payments.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	switch status {
	case GatewayFailed:
		reason := gjson.GetBytes(raw, "failure_reason").String()
		if reason == "" {
			reason = "declined by gateway"
		}
		if err := s.payments.MarkFailed(ctx, ref, reason); err != nil {
			return nil, err
		}
		s.loggerf("level=info msg=payment declined reference=%s txn_id=%s reason=%q", ref, txnID, reason)
		return s.payments.GetByReference(ctx, ref)

	case GatewaySuccessful:
		amount := gjson.GetBytes(raw, "amount")
		if !amount.Exists() {
			return nil, fmt.Errorf("%w: amount is required", ErrValidation)
		}
		if !amountEqual(amount.Float(), p.Amount) {
			s.loggerf("level=error msg=webhook amount mismatch reference=%s got=%.2f want=%.2f", ref, amount.Float(), p.Amount)
			reason := fmt.Sprintf("amount mismatch: gateway reported %.2f, expected %.2f", amount.Float(), p.Amount)
			if ferr := s.payments.MarkFailed(ctx, ref, reason); ferr != nil {
				s.loggerf("level=error msg=could not mark payment failed reference=%s err=%v", ref, ferr)
			}
			return nil, ErrAmountMismatch
		}
		return s.settle(ctx, ref, txnID)

	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
}

// Verify polls the gateway for the current state of a payment. Riders
// poll while the webhook is in flight; both paths settle through the
// same idempotent update, so they can race safely.
func (s *Service) Verify(ctx context.Context, reference string, userID int64, admin bool) (*domain.Payment, error) {
	p, err := s.Get(ctx, reference, userID, admin)
	if err != nil {
		return nil, err
	}
	if p.Status.Final() || p.GatewayTxnID == "" {
		return p, nil
	}

	state, err := s.gateway.Lookup(ctx, p.GatewayTxnID)
	if err != nil {
		return nil, fmt.Errorf("gateway lookup: %w", err)
	}

	switch state.Status {
	case GatewaySuccessful:
		return s.settle(ctx, p.Reference, p.GatewayTxnID)
	case GatewayFailed:
		if err := s.payments.MarkFailed(ctx, p.Reference, "declined by gateway"); err != nil {
			return nil, err
		}
		return s.payments.GetByReference(ctx, p.Reference)
	}
	return p, nil
}

// Get returns one payment by reference. Riders only see their own,
// admins see everything.
func (s *Service) Get(ctx context.Context, reference string, userID int64, admin bool) (*domain.Payment, error) {
	p, err := s.payments.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if !admin && p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error) {
	return s.payments.ListByUser(ctx, userID, limit, offset)
}

// Refund reverses a successful payment. The payment, its booking and
// the trip seats all move in one transaction; refunding twice changes
// nothing.
func (s *Service) Refund(ctx context.Context, reference string) (*domain.Payment, error) {
	p, err := s.payments.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	changed, err := s.payments.Refund(ctx, p.ID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrInvalidStatusTransition) {
			return nil, fmt.Errorf("%w: only successful payments can be refunded", ErrInvalidState)
		}
		return nil, err
	}

	out, err := s.payments.GetByReference(ctx, p.Reference)
	if err != nil {
		return nil, err
	}
	if changed {
		s.loggerf("level=info msg=payment refunded reference=%s amount=%.2f", out.Reference, out.Amount)
		if b, berr := s.bookings.GetByID(ctx, out.BookingID); berr == nil {
			if u, uerr := s.users.GetByID(ctx, b.UserID); uerr == nil {
				notification.SendAsync(s.mail, "payment", notification.BookingCancelledEmail(u, b, true))
			}
		}
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context) (*repository.PaymentStats, error) {
	return s.payments.Stats(ctx)
}

// settle marks the payment successful, which confirms its booking in
// the same transaction, then sends the receipt. Replays change nothing
// and send nothing.
func (s *Service) settle(ctx context.Context, reference, txnID string) (*domain.Payment, error) {
	changed, err := s.payments.MarkSuccessful(ctx, reference, txnID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrInvalidStatusTransition) {
			return nil, fmt.Errorf("%w: payment already settled as failed or refunded", ErrInvalidState)
		}
		return nil, err
	}

	p, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !changed {
		s.loggerf("level=info msg=webhook replay ignored reference=%s", reference)
		return p, nil
	}

	s.loggerf("level=info msg=payment settled reference=%s txn_id=%s amount=%.2f", reference, txnID, p.Amount)
	s.sendReceipt(ctx, p)
	return p, nil
}

// sendReceipt emails the booking confirmation with the e-ticket and
// the receipt attached. Failures only log, the payment is settled
// either way.
func (s *Service) sendReceipt(ctx context.Context, p *domain.Payment) {
	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		s.loggerf("level=error msg=receipt booking lookup failed payment=%s err=%v", p.Reference, err)
		return
	}
	u, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		s.loggerf("level=error msg=receipt user lookup failed payment=%s err=%v", p.Reference, err)
		return
	}
	t, err := s.trips.GetByID(ctx, b.TripID)
	if err != nil {
		s.loggerf("level=error msg=receipt trip lookup failed payment=%s err=%v", p.Reference, err)
		return
	}

	ticket, _, err := notification.ETicketPDF(u, b, t)
	if err != nil {
		s.loggerf("level=error msg=eticket render failed payment=%s err=%v", p.Reference, err)
	}
	email := notification.BookingConfirmedEmail(u, b, t, ticket)

	if receipt, name, rerr := notification.ReceiptPDF(p, b, t); rerr == nil {
		email.Attachments = append(email.Attachments, notification.Attachment{Filename: name, Content: receipt})
	} else {
		s.loggerf("level=error msg=receipt render failed payment=%s err=%v", p.Reference, rerr)
	}

	notification.SendAsync(s.mail, "payment", email)
}

func validMethod(m domain.PaymentMethod) bool {
	switch m {
	case domain.PayMobileMoney, domain.PayCard, domain.PayBankTransfer, domain.PayCash, domain.PayWallet:
		return true
	}
	return false
}

// amountEqual compares monetary amounts to the pesewa, tolerating the
// float drift JSON numbers pick up in transit.
func amountEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
