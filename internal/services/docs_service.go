package services

import (
	"bytes"
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders passenger-facing documents for bookings.
type DocsService struct {
	Bookings BookingStore
	Trains   TrainProvider
}

func (s DocsService) bookings() BookingStore {
	if s.Bookings != nil {
		return s.Bookings
	}
	return repositories.BookingRepo{}
}

func (s DocsService) trains() TrainProvider {
	if s.Trains != nil {
		return s.Trains
	}
	return repositories.TrainRepo{}
}

// BuildETicketPDF renders the e-ticket for a CONFIRMED booking.
// Returns the PDF bytes and a download filename.
func (s DocsService) BuildETicketPDF(pnr string) ([]byte, string, error) {
	pnr = utils.NormalizeCode(pnr)
	if !ValidPNR(pnr) {
		return nil, "", domain.ValidationError{Field: "pnr", Msg: "malformed pnr"}
	}

	b, found, err := s.bookings().GetByPNR(pnr)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	if !found {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}
	if b.Status != models.BookingConfirmed {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "e-ticket is available only for confirmed bookings"}
	}

	trainName := b.TrainNumber
	route := ""
	if train, ok, err := s.trains().GetTrain(b.TrainNumber); err == nil && ok {
		trainName = fmt.Sprintf("%s (%s)", train.Name, train.TrainNumber)
		route = fmt.Sprintf("%s -> %s, dep %s", train.FromStation, train.ToStation, train.DepartureTime)
	}

	data, err := buildETicketPDF(b, trainName, route)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render e-ticket", Err: err}
	}
	filename := fmt.Sprintf("ETICKET_%s.pdf", b.PNR)
	return data, filename, nil
}

func buildETicketPDF(b models.Booking, trainName, route string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR          : %s", b.PNR),
		fmt.Sprintf("Train        : %s", trainName),
		fmt.Sprintf("Route        : %s", safe(route, "-")),
		fmt.Sprintf("Journey Date : %s", b.JourneyDate),
		fmt.Sprintf("Class        : %s", b.ClassType),
		fmt.Sprintf("Seats        : %d", b.SeatCount),
		fmt.Sprintf("Total Fare   : %s", utils.FormatRupee(b.TotalFare)),
		fmt.Sprintf("Status       : %s", b.Status),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range b.Passengers {
		seat := p.SeatNumber
		if seat == "" {
			seat = "-"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s  (seat %s)", i+1, p.Name, seat))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Carry a valid photo ID during the journey. This e-ticket is valid only with the listed PNR.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
