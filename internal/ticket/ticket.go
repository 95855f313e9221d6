package ticket

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/phpdave11/gofpdf"
)

const timeLayout = "2006-01-02 15:04 MST"

// Render builds the e-ticket PDF for a booking and a download file name.
// Cancelled bookings still render, stamped as cancelled.
func Render(b *domain.Booking) ([]byte, string, error) {
	if b == nil || b.Travel == nil {
		return nil, "", errors.New("ticket: booking without travel details")
	}
	t := b.Travel

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+b.BookingID, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID   : %s", b.BookingID),
		fmt.Sprintf("Status       : %s", strings.ToUpper(string(b.Status))),
		fmt.Sprintf("Travel       : %s (%s)", t.TravelID, t.Type),
		fmt.Sprintf("Route        : %s -> %s", t.Source, t.Destination),
		fmt.Sprintf("Departure    : %s", t.DepartureTime.Format(timeLayout)),
		fmt.Sprintf("Arrival      : %s", t.ArrivalTime.Format(timeLayout)),
		fmt.Sprintf("Seats        : %d", b.Seats),
		fmt.Sprintf("Total price  : %s", formatCents(b.TotalCents)),
		fmt.Sprintf("Booked at    : %s", b.BookedAt.Format(timeLayout)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	note := "Please carry a valid photo ID and show this ticket at departure."
	if !b.IsConfirmed() {
		note = "This booking has been cancelled and is not valid for travel."
	}
	pdf.MultiCell(0, 6, note, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("ETICKET_%s.pdf", b.BookingID), nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
