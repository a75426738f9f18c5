package services

import (
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

const (
	maxPassengersPerBooking = 6
	pnrMaxAttempts          = 5
)

// BookingStore persists booking records keyed by PNR.
type BookingStore interface {
	Insert(b models.Booking) (models.Booking, bool, error)
	GetByPNR(pnr string) (models.Booking, bool, error)
	MarkCancelled(pnr string) (bool, error)
}

// CreateBookingInput is the validated boundary of createBooking.
// FareOverride, when positive, replaces the class fare per seat.
type CreateBookingInput struct {
	TrainNumber  string
	UserID       int64
	JourneyDate  string
	ClassType    string
	Passengers   []models.Passenger
	FareOverride int64
}

// BookingService orchestrates booking creation and cancellation. It is the
// only writer of booking records and the only caller of the ledger's
// mutating operations.
type BookingService struct {
	Ledger   InventoryLedger
	Bookings BookingStore
	Comp     *Compensator

	// Injectable for tests.
	Now    func() time.Time
	NewPNR func() (string, error)
}

func (s BookingService) bookings() BookingStore {
	if s.Bookings != nil {
		return s.Bookings
	}
	return repositories.BookingRepo{}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) newPNR() (string, error) {
	if s.NewPNR != nil {
		return s.NewPNR()
	}
	return GeneratePNR()
}

// CreateBooking validates, reserves inventory, then persists a CONFIRMED
// booking under a fresh PNR. On insufficient seats the booking is returned
// transiently with status FAILED and nothing is written. If persistence
// fails after the reservation succeeded, the reservation is rolled back
// via a compensating release so inventory is never silently leaked.
func (s BookingService) CreateBooking(in CreateBookingInput) (models.Booking, error) {
	trainNumber := utils.NormalizeCode(in.TrainNumber)
	classType := utils.NormalizeCode(in.ClassType)

	if trainNumber == "" {
		return models.Booking{}, domain.ValidationError{Field: "trainNumber", Msg: "required"}
	}
	if in.UserID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "userId", Msg: "required"}
	}
	if len(in.Passengers) == 0 {
		return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: "at least one passenger required"}
	}
	if len(in.Passengers) > maxPassengersPerBooking {
		return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("at most %d passengers per booking", maxPassengersPerBooking)}
	}

	passengers := make([]models.Passenger, 0, len(in.Passengers))
	for _, p := range in.Passengers {
		name := utils.NormalizeSpace(p.Name)
		if name == "" {
			return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: "passenger name required"}
		}
		passengers = append(passengers, models.Passenger{
			Name:       name,
			SeatNumber: utils.NormalizeCode(p.SeatNumber),
		})
	}

	d, err := utils.ParseDate(in.JourneyDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "journeyDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if utils.BeforeToday(d, s.now()) {
		return models.Booking{}, domain.ValidationError{Field: "journeyDate", Msg: "date is in the past"}
	}
	journeyDate := utils.FormatDate(d)

	train, found, err := s.Ledger.trains().GetTrain(trainNumber)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to load train", Err: err}
	}
	if !found {
		return models.Booking{}, domain.NotFoundError{Resource: "train"}
	}
	class, ok := train.ClassByType(classType)
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "classType", Msg: fmt.Sprintf("class %s not offered on train %s", classType, trainNumber)}
	}

	farePerSeat := class.Fare
	if in.FareOverride > 0 {
		farePerSeat = in.FareOverride
	}

	booking := models.Booking{
		TrainNumber: trainNumber,
		UserID:      in.UserID,
		JourneyDate: journeyDate,
		ClassType:   classType,
		Passengers:  passengers,
		SeatCount:   len(passengers),
		TotalFare:   int64(len(passengers)) * farePerSeat,
		Status:      models.BookingPending,
	}
	key := booking.InventoryKey()

	if err := s.Ledger.Reserve(key, booking.SeatCount); err != nil {
		if domain.IsInsufficientSeats(err) {
			booking.Status = models.BookingFailed
			return booking, err
		}
		return models.Booking{}, err
	}

	// Reservation held from here on: every failure path must give it back.
	for attempt := 1; attempt <= pnrMaxAttempts; attempt++ {
		pnr, err := s.newPNR()
		if err != nil {
			s.compensate(key, booking.SeatCount)
			return models.Booking{}, domain.InternalError{Msg: "failed to generate pnr", Err: err}
		}
		booking.PNR = pnr
		booking.Status = models.BookingConfirmed

		stored, duplicate, err := s.bookings().Insert(booking)
		if err != nil {
			s.compensate(key, booking.SeatCount)
			return models.Booking{}, domain.InternalError{Msg: "failed to persist booking", Err: err}
		}
		if duplicate {
			continue
		}
		utils.LogEvent("", "booking", "create",
			fmt.Sprintf("pnr=%s train=%s date=%s class=%s seats=%d", stored.PNR, trainNumber, journeyDate, classType, stored.SeatCount))
		return stored, nil
	}

	s.compensate(key, booking.SeatCount)
	return models.Booking{}, domain.PNRExhaustedError{Attempts: pnrMaxAttempts}
}

// CancelBooking cancels a CONFIRMED booking and releases its seats. The
// status transition is the atomic gate: whichever caller flips it releases
// inventory exactly once; everyone else gets AlreadyCancelled.
func (s BookingService) CancelBooking(pnr string) (models.Booking, error) {
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

	switch b.Status {
	case models.BookingConfirmed:
	case models.BookingCancelled:
		return b, domain.AlreadyCancelledError{PNR: pnr}
	default:
		return b, domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("status %s is not cancellable", b.Status)}
	}

	won, err := s.bookings().MarkCancelled(pnr)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}
	if !won {
		// A concurrent cancel took the gate; its winner released the seats.
		b.Status = models.BookingCancelled
		return b, domain.AlreadyCancelledError{PNR: pnr}
	}

	b.Status = models.BookingCancelled
	if err := s.Ledger.Release(b.InventoryKey(), b.SeatCount); err != nil {
		s.deferRelease(b.InventoryKey(), b.SeatCount)
	}
	utils.LogEvent("", "booking", "cancel", "pnr="+pnr)
	return b, nil
}

func (s BookingService) compensate(key models.InventoryKey, seats int) {
	if err := s.Ledger.Release(key, seats); err != nil {
		s.deferRelease(key, seats)
	}
}

func (s BookingService) deferRelease(key models.InventoryKey, seats int) {
	if s.Comp != nil {
		s.Comp.Enqueue(key, seats)
		return
	}
	utils.LogAnomaly("booking", "compensate",
		fmt.Sprintf("release of %d seats on %s/%s/%s failed with no compensator configured",
			seats, key.TrainNumber, key.ClassType, key.JourneyDate))
}
