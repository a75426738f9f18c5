package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
)

// InventoryRepo owns the inventory table. All seat-counter mutations go
// through single guarded UPDATE statements so the check and the increment
// are one atomic step on the row; no application lock is held across I/O.
type InventoryRepo struct {
	DB *sql.DB
}

func (r InventoryRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureRecord lazily creates the row for a key, seeded from the train's
// class definition. INSERT IGNORE keeps concurrent first-reservers safe:
// exactly one row wins, the rest are no-ops against the unique key.
func (r InventoryRepo) EnsureRecord(rec models.InventoryRecord) error {
	_, err := r.db().Exec(`
		INSERT IGNORE INTO inventory (train_number, journey_date, class_type, total_seats, confirmed_seats)
		VALUES (?, ?, ?, ?, 0)
	`, rec.TrainNumber, rec.JourneyDate, rec.ClassType, rec.TotalSeats)
	return err
}

// Reserve atomically checks capacity and increments confirmed_seats.
// Returns false when the guard fails, i.e. the key cannot cover the
// requested seats. Two concurrent calls are linearized by the row lock:
// one sees the other's increment, never both reading the stale counter.
func (r InventoryRepo) Reserve(key models.InventoryKey, seats int) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE inventory
		SET confirmed_seats = confirmed_seats + ?
		WHERE train_number = ? AND journey_date = ? AND class_type = ?
		  AND confirmed_seats + ? <= total_seats
	`, seats, key.TrainNumber, key.JourneyDate, key.ClassType, seats)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Release decrements confirmed_seats, floored at zero, in one statement.
// The decrement and the floor must be a single atomic mutation on the row:
// a separate clamp statement could zero out seats a concurrent Reserve
// committed in between. released reports a full decrement; clamped reports
// an underflow cut to zero. Both come from a best-effort read around the
// update and feed logging only.
func (r InventoryRepo) Release(key models.InventoryKey, seats int) (released, clamped bool, err error) {
	before, known, err := r.Get(key)
	if err != nil {
		return false, false, err
	}

	res, err := r.db().Exec(`
		UPDATE inventory
		SET confirmed_seats = GREATEST(confirmed_seats - ?, 0)
		WHERE train_number = ? AND journey_date = ? AND class_type = ?
		  AND confirmed_seats > 0
	`, seats, key.TrainNumber, key.JourneyDate, key.ClassType)
	if err != nil {
		return false, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, false, err
	}
	if n == 0 {
		return false, false, nil
	}
	if known && before.ConfirmedSeats < seats {
		return false, true, nil
	}
	return true, false, nil
}

// Get reads one inventory record. found is false when the key has never
// been reserved against.
func (r InventoryRepo) Get(key models.InventoryKey) (models.InventoryRecord, bool, error) {
	rec := models.InventoryRecord{
		TrainNumber: key.TrainNumber,
		JourneyDate: key.JourneyDate,
		ClassType:   key.ClassType,
	}
	err := r.db().QueryRow(`
		SELECT total_seats, confirmed_seats
		FROM inventory
		WHERE train_number = ? AND journey_date = ? AND class_type = ?
		LIMIT 1
	`, key.TrainNumber, key.JourneyDate, key.ClassType).Scan(&rec.TotalSeats, &rec.ConfirmedSeats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.InventoryRecord{}, false, nil
		}
		return models.InventoryRecord{}, false, err
	}
	return rec, true, nil
}

// Snapshot returns per-class counters for a train and date. Classes with
// no inventory row yet count as fully available. The read reflects the
// last committed state and may trail in-flight reservations.
func (r InventoryRepo) Snapshot(trainNumber, journeyDate string) ([]models.InventoryRecord, error) {
	rows, err := r.db().Query(`
		SELECT tc.class_type, tc.total_seats, COALESCE(inv.confirmed_seats, 0)
		FROM train_classes tc
		LEFT JOIN inventory inv
		  ON inv.train_number = tc.train_number
		 AND inv.class_type = tc.class_type
		 AND inv.journey_date = ?
		WHERE tc.train_number = ?
		ORDER BY tc.id ASC
	`, journeyDate, trainNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.InventoryRecord{}
	for rows.Next() {
		rec := models.InventoryRecord{
			TrainNumber: trainNumber,
			JourneyDate: journeyDate,
		}
		if err := rows.Scan(&rec.ClassType, &rec.TotalSeats, &rec.ConfirmedSeats); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
