package services

import (
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// QueryService is the read-only surface: timetable search, availability
// snapshots and booking lookup. It never mutates ledger or booking state.
type QueryService struct {
	Ledger   InventoryLedger
	Bookings BookingStore

	Now func() time.Time
}

func (s QueryService) bookings() BookingStore {
	if s.Bookings != nil {
		return s.Bookings
	}
	return repositories.BookingRepo{}
}

func (s QueryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SearchTrains lists trains on a route for a journey date, ascending by
// departure time. Trains run daily, so the date gates validity rather
// than filtering the timetable.
func (s QueryService) SearchTrains(fromStation, toStation, date string) ([]models.Train, error) {
	from := utils.NormalizeCode(fromStation)
	to := utils.NormalizeCode(toStation)
	if from == "" || to == "" {
		return nil, domain.ValidationError{Field: "route", Msg: "from and to stations required"}
	}
	if from == to {
		return nil, domain.ValidationError{Field: "route", Msg: "from and to stations must differ"}
	}

	d, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if utils.BeforeToday(d, s.now()) {
		return nil, domain.ValidationError{Field: "date", Msg: "date is in the past"}
	}

	for _, code := range []string{from, to} {
		ok, err := s.Ledger.trains().HasStation(code)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to check station", Err: err}
		}
		if !ok {
			return nil, domain.NotFoundError{Resource: "station " + code}
		}
	}

	trains, err := s.Ledger.trains().ListByRoute(from, to)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to search trains", Err: err}
	}
	return trains, nil
}

// GetAvailability returns available seats per class for a train and date.
func (s QueryService) GetAvailability(trainNumber, date string) (map[string]int, error) {
	number := utils.NormalizeCode(trainNumber)

	d, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}

	_, found, err := s.Ledger.trains().GetTrain(number)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load train", Err: err}
	}
	if !found {
		return nil, domain.NotFoundError{Resource: "train"}
	}

	return s.Ledger.Snapshot(number, utils.FormatDate(d))
}

// GetBookingByPNR fetches a booking with its passengers.
func (s QueryService) GetBookingByPNR(pnr string) (models.Booking, error) {
	pnr = utils.NormalizeCode(pnr)
	if !ValidPNR(pnr) {
		return models.Booking{}, domain.ValidationError{Field: "pnr", Msg: "malformed pnr"}
	}
	b, found, err := s.bookings().GetByPNR(pnr)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	if !found {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}
