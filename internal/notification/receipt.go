package notification

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"kayexpress/internal/domain"
)

// ReceiptPDF renders the payment receipt that rides along with the
// booking confirmation email.
func ReceiptPDF(p *domain.Payment, b *domain.Booking, t *domain.Trip) ([]byte, string, error) {
	route := "-"
	if t.Route != nil && t.Route.Origin != nil && t.Route.Destination != nil {
		route = fmt.Sprintf("%s - %s", t.Route.Origin.CityTown, t.Route.Destination.CityTown)
	}

	method := string(p.Method)
	if p.Method == domain.PayMobileMoney && p.MomoProvider != "" {
		method = fmt.Sprintf("%s (%s, %s)", p.Method, p.MomoProvider, domain.MaskPhone(p.MomoNumber))
	}
	paidAt := "-"
	if p.PaidAt != nil {
		paidAt = p.PaidAt.Format("02 Jan 2006 15:04")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("KayExpress Payment Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "KAYEXPRESS PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt        : %s", p.Reference),
		fmt.Sprintf("Booking        : %s", b.Reference),
		fmt.Sprintf("Route          : %s", route),
		fmt.Sprintf("Departure      : %s", t.DepartureTime.Format("Mon, 02 Jan 2006 15:04")),
		fmt.Sprintf("Seats          : %d", b.Seats),
		fmt.Sprintf("Method         : %s", method),
		fmt.Sprintf("Paid at        : %s", paidAt),
		fmt.Sprintf("Amount         : GHS %.2f", p.Amount),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Keep this receipt for your records. Refunds are issued to the wallet or card the payment was made from.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", p.Reference)
	return buf.Bytes(), filename, nil
}
