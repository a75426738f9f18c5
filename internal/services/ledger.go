package services

import (
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// InventoryStore is the durable-store face of the ledger. Implementations
// must make Reserve a single atomic check-and-increment per key; the
// ledger holds no lock of its own across these calls.
type InventoryStore interface {
	EnsureRecord(rec models.InventoryRecord) error
	Reserve(key models.InventoryKey, seats int) (bool, error)
	Release(key models.InventoryKey, seats int) (released, clamped bool, err error)
	Get(key models.InventoryKey) (models.InventoryRecord, bool, error)
	Snapshot(trainNumber, journeyDate string) ([]models.InventoryRecord, error)
}

// TrainProvider is the read-only reference data boundary.
type TrainProvider interface {
	GetTrain(trainNumber string) (models.Train, bool, error)
	ListByRoute(fromStation, toStation string) ([]models.Train, error)
	HasStation(code string) (bool, error)
}

// InventoryLedger owns seat counters per (train, journey date, class).
// It is the only component allowed to mutate inventory; all mutating
// callers funnel through Reserve/Release.
type InventoryLedger struct {
	Store  InventoryStore
	Trains TrainProvider
}

func (l InventoryLedger) store() InventoryStore {
	if l.Store != nil {
		return l.Store
	}
	return repositories.InventoryRepo{}
}

func (l InventoryLedger) trains() TrainProvider {
	if l.Trains != nil {
		return l.Trains
	}
	return repositories.TrainRepo{}
}

// Reserve seeds the inventory record on first use and then atomically
// claims seats. Insufficient capacity is a business outcome carried as
// InsufficientSeatsError, not a fault.
func (l InventoryLedger) Reserve(key models.InventoryKey, seats int) error {
	if seats <= 0 {
		return domain.ValidationError{Field: "seatCount", Msg: "must be positive"}
	}

	train, found, err := l.trains().GetTrain(key.TrainNumber)
	if err != nil {
		return domain.InternalError{Msg: "failed to load train", Err: err}
	}
	if !found {
		return domain.NotFoundError{Resource: "train"}
	}
	class, ok := train.ClassByType(key.ClassType)
	if !ok {
		return domain.ValidationError{Field: "classType", Msg: fmt.Sprintf("class %s not offered on train %s", key.ClassType, key.TrainNumber)}
	}

	seed := models.InventoryRecord{
		TrainNumber: key.TrainNumber,
		JourneyDate: key.JourneyDate,
		ClassType:   key.ClassType,
		TotalSeats:  class.TotalSeats,
	}
	if err := l.store().EnsureRecord(seed); err != nil {
		return domain.InternalError{Msg: "failed to seed inventory", Err: err}
	}

	reserved, err := l.store().Reserve(key, seats)
	if err != nil {
		return domain.InternalError{Msg: "failed to reserve seats", Err: err}
	}
	if !reserved {
		available := 0
		if rec, ok, err := l.store().Get(key); err == nil && ok {
			available = rec.Available()
		}
		return domain.InsufficientSeatsError{
			TrainNumber: key.TrainNumber,
			JourneyDate: key.JourneyDate,
			ClassType:   key.ClassType,
			Requested:   seats,
			Available:   available,
		}
	}
	return nil
}

// Release gives seats back. An underflow attempt means bookings and
// counters disagree; it is clamped at zero and logged as an anomaly
// rather than propagated, so a retried release can never go negative.
func (l InventoryLedger) Release(key models.InventoryKey, seats int) error {
	if seats <= 0 {
		return domain.ValidationError{Field: "seatCount", Msg: "must be positive"}
	}
	released, clamped, err := l.store().Release(key, seats)
	if err != nil {
		return domain.InternalError{Msg: "failed to release seats", Err: err}
	}
	if !released {
		utils.LogAnomaly("inventory", "release",
			fmt.Sprintf("underflow releasing %d seats on %s/%s/%s (clamped=%t)",
				seats, key.TrainNumber, key.ClassType, key.JourneyDate, clamped))
	}
	return nil
}

// Snapshot maps class type to available seats for a train and date.
// Classes never reserved against report full capacity. The view reflects
// a recent committed state and may trail in-flight reservations.
func (l InventoryLedger) Snapshot(trainNumber, journeyDate string) (map[string]int, error) {
	recs, err := l.store().Snapshot(trainNumber, journeyDate)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to read inventory", Err: err}
	}
	out := make(map[string]int, len(recs))
	for _, rec := range recs {
		out[rec.ClassType] = rec.Available()
	}
	return out, nil
}
