package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
)

// TrainRepo is the read-only reference data provider for trains and
// their class definitions.
type TrainRepo struct {
	DB *sql.DB
}

func (r TrainRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetTrain fetches one train with its classes. found is false when the
// train number is unknown.
func (r TrainRepo) GetTrain(trainNumber string) (models.Train, bool, error) {
	db := r.db()

	var t models.Train
	err := db.QueryRow(`
		SELECT train_number, name, from_station, to_station, departure_time, arrival_time
		FROM trains
		WHERE train_number = ?
		LIMIT 1
	`, trainNumber).Scan(
		&t.TrainNumber,
		&t.Name,
		&t.FromStation,
		&t.ToStation,
		&t.DepartureTime,
		&t.ArrivalTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Train{}, false, nil
		}
		return models.Train{}, false, err
	}

	classes, err := r.loadClasses(t.TrainNumber)
	if err != nil {
		return models.Train{}, false, err
	}
	t.Classes = classes
	return t, true, nil
}

// ListByRoute returns trains serving a route, ascending by departure time.
func (r TrainRepo) ListByRoute(fromStation, toStation string) ([]models.Train, error) {
	db := r.db()

	rows, err := db.Query(`
		SELECT train_number, name, from_station, to_station, departure_time, arrival_time
		FROM trains
		WHERE from_station = ? AND to_station = ?
		ORDER BY departure_time ASC
	`, fromStation, toStation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Train{}
	for rows.Next() {
		var t models.Train
		if err := rows.Scan(
			&t.TrainNumber,
			&t.Name,
			&t.FromStation,
			&t.ToStation,
			&t.DepartureTime,
			&t.ArrivalTime,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		classes, err := r.loadClasses(out[i].TrainNumber)
		if err != nil {
			return nil, err
		}
		out[i].Classes = classes
	}
	return out, nil
}

// HasStation reports whether a station code exists in the catalog.
func (r TrainRepo) HasStation(code string) (bool, error) {
	var found string
	err := r.db().QueryRow(`SELECT code FROM stations WHERE code = ? LIMIT 1`, code).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r TrainRepo) loadClasses(trainNumber string) ([]models.TrainClass, error) {
	rows, err := r.db().Query(`
		SELECT class_type, total_seats, fare
		FROM train_classes
		WHERE train_number = ?
		ORDER BY id ASC
	`, trainNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TrainClass{}
	for rows.Next() {
		var c models.TrainClass
		if err := rows.Scan(&c.Type, &c.TotalSeats, &c.Fare); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
