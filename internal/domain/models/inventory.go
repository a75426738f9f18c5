package models

// InventoryKey identifies one consistency unit: all reservations for the
// same train, journey date and class contend on exactly this key.
type InventoryKey struct {
	TrainNumber string
	JourneyDate string // YYYY-MM-DD, no time component
	ClassType   string
}

// InventoryRecord holds the seat counters for one key. Created lazily on
// the first reservation attempt, seeded from the train's class definition,
// never deleted. ConfirmedSeats stays within [0, TotalSeats].
type InventoryRecord struct {
	TrainNumber    string `json:"trainNumber"`
	JourneyDate    string `json:"journeyDate"`
	ClassType      string `json:"classType"`
	TotalSeats     int    `json:"totalSeats"`
	ConfirmedSeats int    `json:"confirmedSeats"`
}

// Key returns the record's inventory key.
func (r InventoryRecord) Key() InventoryKey {
	return InventoryKey{
		TrainNumber: r.TrainNumber,
		JourneyDate: r.JourneyDate,
		ClassType:   r.ClassType,
	}
}

// Available returns the remaining seats.
func (r InventoryRecord) Available() int {
	return r.TotalSeats - r.ConfirmedSeats
}
