package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"kayexpress/internal/domain"
)

// Attachment is an in-memory file to include with an email.
type Attachment struct {
	Filename string
	Content  []byte
}

type Email struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Sender delivers customer notifications. Services treat delivery as
// best effort and never fail a booking over it.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Noop drops every message. Used in tests and when SMTP is not
// configured.
type Noop struct{}

func (Noop) Send(context.Context, Email) error { return nil }

// SendAsync delivers an email on its own goroutine. Failures are
// logged, never returned, so a slow or broken SMTP server cannot fail
// the request that triggered the message.
func SendAsync(sender Sender, scope string, email Email) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := sender.Send(ctx, email); err != nil {
			log.Printf("%s: email send failed to=%s subject=%q err=%v", scope, email.To, email.Subject, err)
		}
	}()
}

func AgentReceivedEmail(a *domain.Agent) Email {
	return Email{
		To:      a.Email,
		Subject: fmt.Sprintf("Application received: %s", a.Reference),
		HTMLBody: fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>Thank you for applying to become a KayExpress agent.</p>
			<p>Your reference number is <strong>%s</strong>.</p>
			<p>Our team reviews applications within 5 working days and will reach you on %s.</p>
		`, a.FullName, a.Reference, a.Phone),
	}
}

func QuoteReceivedEmail(q *domain.Quote) Email {
	return Email{
		To:      q.Email,
		Subject: fmt.Sprintf("Quote request received: %s", q.Reference),
		HTMLBody: fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>We have received your charter request <strong>%s</strong>.</p>
			<p>%s to %s on %s, %d passengers</p>
			<p>Our team will price the trip and get back to you within one working day.</p>
		`, q.FullName, q.Reference, q.PickupLocation, q.Destination, q.TravelDate.Format("02 Jan 2006"), q.Passengers),
	}
}

func BookingCreatedEmail(u *domain.User, b *domain.Booking, t *domain.Trip) Email {
	route := "-"
	if t.Route != nil && t.Route.Origin != nil && t.Route.Destination != nil {
		route = fmt.Sprintf("%s to %s", t.Route.Origin.CityTown, t.Route.Destination.CityTown)
	}
	return Email{
		To:      u.Email,
		Subject: fmt.Sprintf("Booking received: %s", b.Reference),
		HTMLBody: fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>We are holding %d seat(s) for you.</p>
			<p>Reference: <strong>%s</strong></p>
			<p>Route: %s</p>
			<p>Departure: %s</p>
			<p>Amount due: GHS %.2f</p>
			<p>Complete payment before %s, after that the booking expires and the seats are released.</p>
		`, u.FullName, b.Seats, b.Reference, route, t.DepartureTime.Format("Mon, 02 Jan 2006 15:04"), b.TotalAmount, b.PaymentDeadline.Format("15:04 on 02 Jan 2006")),
	}
}

func BookingConfirmedEmail(u *domain.User, b *domain.Booking, t *domain.Trip, ticket []byte) Email {
	route := "-"
	if t.Route != nil && t.Route.Origin != nil && t.Route.Destination != nil {
		route = fmt.Sprintf("%s to %s", t.Route.Origin.CityTown, t.Route.Destination.CityTown)
	}

	email := Email{
		To:      u.Email,
		Subject: fmt.Sprintf("Booking confirmed: %s", b.Reference),
		HTMLBody: fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>Your payment has been received and your booking is confirmed.</p>
			<p>Reference: <strong>%s</strong></p>
			<p>Route: %s</p>
			<p>Departure: %s</p>
			<p>Seats: %d</p>
			<p>Amount paid: GHS %.2f</p>
			<p>Your e-ticket is attached. Show it at the terminal when boarding.</p>
		`, u.FullName, b.Reference, route, t.DepartureTime.Format("Mon, 02 Jan 2006 15:04"), b.Seats, b.TotalAmount),
	}
	if len(ticket) > 0 {
		email.Attachments = append(email.Attachments, Attachment{
			Filename: fmt.Sprintf("ETICKET_%s.pdf", b.Reference),
			Content:  ticket,
		})
	}
	return email
}

func BookingCancelledEmail(u *domain.User, b *domain.Booking, refunded bool) Email {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your booking <strong>%s</strong> has been cancelled.</p>
	`, u.FullName, b.Reference)
	if refunded {
		body += fmt.Sprintf(`
		<p>A refund of GHS %.2f will be returned to your payment method within 3 business days.</p>
		`, b.TotalAmount)
	}
	return Email{
		To:       u.Email,
		Subject:  fmt.Sprintf("Booking cancelled: %s", b.Reference),
		HTMLBody: body,
	}
}

func QuoteReadyEmail(q *domain.Quote) Email {
	amount := 0.0
	if q.QuoteAmount != nil {
		amount = *q.QuoteAmount
	}
	return Email{
		To:      q.Email,
		Subject: fmt.Sprintf("Your charter quote is ready: %s", q.Reference),
		HTMLBody: fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>We have priced your charter request <strong>%s</strong>.</p>
			<p>%s to %s, %d passengers</p>
			<p>Quoted amount: <strong>GHS %.2f</strong></p>
			<p>%s</p>
			<p>Reply with your reference number to accept this quote.</p>
		`, q.FullName, q.Reference, q.PickupLocation, q.Destination, q.Passengers, amount, q.QuoteNotes),
	}
}
