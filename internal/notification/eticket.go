package notification

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/yeqown/go-qrcode"

	"kayexpress/internal/domain"
)

// ETicketPDF renders the printable ticket for a confirmed booking. The
// QR code carries the booking reference for gate scanning.
func ETicketPDF(u *domain.User, b *domain.Booking, t *domain.Trip) ([]byte, string, error) {
	qrc, err := qrcode.New(b.Reference)
	if err != nil {
		return nil, "", fmt.Errorf("render qr code: %w", err)
	}
	var qrBuf bytes.Buffer
	if err := qrc.SaveTo(&qrBuf); err != nil {
		return nil, "", fmt.Errorf("render qr code: %w", err)
	}

	origin, destination := "-", "-"
	if t.Route != nil {
		if t.Route.Origin != nil {
			origin = fmt.Sprintf("%s, %s", t.Route.Origin.Name, t.Route.Origin.CityTown)
		}
		if t.Route.Destination != nil {
			destination = fmt.Sprintf("%s, %s", t.Route.Destination.Name, t.Route.Destination.CityTown)
		}
	}
	busNumber := "-"
	if t.Bus != nil {
		busNumber = t.Bus.BusNumber
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("KayExpress E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "KAYEXPRESS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger      : %s", u.FullName),
		fmt.Sprintf("Phone          : %s", u.Phone),
		fmt.Sprintf("Reference      : %s", b.Reference),
		fmt.Sprintf("From           : %s", origin),
		fmt.Sprintf("To             : %s", destination),
		fmt.Sprintf("Departure      : %s", t.DepartureTime.Format("Mon, 02 Jan 2006 15:04")),
		fmt.Sprintf("Bus            : %s", busNumber),
		fmt.Sprintf("Seats          : %d", b.Seats),
		fmt.Sprintf("Amount paid    : GHS %.2f", b.TotalAmount),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader("boarding-qr", opts, &qrBuf)
	pdf.ImageOptions("boarding-qr", 150, 30, 40, 40, false, opts, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket admits the booked number of passengers. Arrive at the terminal at least 30 minutes before departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", b.Reference)
	return buf.Bytes(), filename, nil
}
