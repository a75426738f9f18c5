package models

// TrainClass is immutable reference data describing one coach class on a
// train: its code (SL, 3A, 2A, 1A, ...), capacity and per-seat fare.
type TrainClass struct {
	Type       string `json:"type"`
	TotalSeats int    `json:"totalSeats"`
	Fare       int64  `json:"fare"`
}

// Train is reference data keyed by TrainNumber. Trains run daily;
// DepartureTime/ArrivalTime are time-of-day strings (HH:MM:SS).
type Train struct {
	TrainNumber   string       `json:"trainNumber"`
	Name          string       `json:"name"`
	FromStation   string       `json:"fromStation"`
	ToStation     string       `json:"toStation"`
	DepartureTime string       `json:"departureTime"`
	ArrivalTime   string       `json:"arrivalTime"`
	Classes       []TrainClass `json:"classes"`
}

// ClassByType returns the class definition for a type code, if present.
func (t Train) ClassByType(classType string) (TrainClass, bool) {
	for _, c := range t.Classes {
		if c.Type == classType {
			return c, true
		}
	}
	return TrainClass{}, false
}

// Station is catalog reference data.
type Station struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}
