package domain

import (
	"errors"
	"fmt"
)

// InsufficientSeatsError is a business outcome, not a fault: the inventory
// key could not cover the requested seat count at reservation time.
type InsufficientSeatsError struct {
	TrainNumber string
	JourneyDate string
	ClassType   string
	Requested   int
	Available   int
}

func (e InsufficientSeatsError) Error() string {
	return fmt.Sprintf("insufficient seats on %s/%s/%s: requested %d, available %d",
		e.TrainNumber, e.ClassType, e.JourneyDate, e.Requested, e.Available)
}

// AlreadyCancelledError reports a cancel against a booking that is no
// longer CONFIRMED. A retried cancel lands here instead of double-releasing.
type AlreadyCancelledError struct {
	PNR string
}

func (e AlreadyCancelledError) Error() string {
	return fmt.Sprintf("booking %s already cancelled", e.PNR)
}

// PNRExhaustedError means PNR generation kept colliding past the retry cap.
// Should be unreachable given the 36^10 space; surfaced as a hard failure.
type PNRExhaustedError struct {
	Attempts int
}

func (e PNRExhaustedError) Error() string {
	return fmt.Sprintf("pnr allocation exhausted after %d attempts", e.Attempts)
}

func IsInsufficientSeats(err error) bool {
	var target InsufficientSeatsError
	return errors.As(err, &target)
}

func IsAlreadyCancelled(err error) bool {
	var target AlreadyCancelledError
	return errors.As(err, &target)
}

func IsPNRExhausted(err error) bool {
	var target PNRExhaustedError
	return errors.As(err, &target)
}
