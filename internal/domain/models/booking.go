package models

// BookingStatus is the booking state machine value.
// PENDING -> {CONFIRMED, FAILED}; CONFIRMED -> CANCELLED. Nothing else.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingFailed    BookingStatus = "FAILED"
)

// Passenger carries per-passenger data on a booking. SeatNumber is free
// text supplied by the caller; seat assignment itself is out of scope.
type Passenger struct {
	Name       string `json:"name"`
	SeatNumber string `json:"seatNumber"`
}

// Booking is the persisted booking record. PNR is assigned at creation and
// immutable afterwards; Status is the only field a later operation rewrites.
type Booking struct {
	ID          int64         `json:"id"`
	PNR         string        `json:"pnr"`
	TrainNumber string        `json:"trainNumber"`
	UserID      int64         `json:"userId"`
	JourneyDate string        `json:"journeyDate"`
	ClassType   string        `json:"classType"`
	Passengers  []Passenger   `json:"passengers"`
	SeatCount   int           `json:"seatCount"`
	TotalFare   int64         `json:"totalFare"`
	Status      BookingStatus `json:"status"`
	CreatedAt   string        `json:"createdAt,omitempty"`
}

// InventoryKey returns the inventory key this booking reserved against.
func (b Booking) InventoryKey() InventoryKey {
	return InventoryKey{
		TrainNumber: b.TrainNumber,
		JourneyDate: b.JourneyDate,
		ClassType:   b.ClassType,
	}
}

// User mirrors the users table minus the password hash.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
