package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

// BookingRepo owns booking rows and their passenger children. Each booking
// lives under its own PNR key, so concurrent inserts never contend except
// on an actual PNR collision, which the unique key reports as 1062.
type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert persists a booking and its passengers in one transaction.
// duplicatePNR is true when the PNR unique key rejected the row; the
// caller regenerates and retries.
func (r BookingRepo) Insert(b models.Booking) (models.Booking, bool, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return models.Booking{}, false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO bookings (pnr, train_number, user_id, journey_date, class_type, seat_count, total_fare, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, b.PNR, b.TrainNumber, b.UserID, b.JourneyDate, b.ClassType, b.SeatCount, b.TotalFare, string(b.Status))
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return models.Booking{}, true, nil
		}
		return models.Booking{}, false, err
	}
	bookingID, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, false, err
	}

	for _, p := range b.Passengers {
		if _, err := tx.Exec(`
			INSERT INTO booking_passengers (booking_id, name, seat_number)
			VALUES (?, ?, ?)
		`, bookingID, p.Name, p.SeatNumber); err != nil {
			return models.Booking{}, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, false, err
	}

	b.ID = bookingID
	return b, false, nil
}

// GetByPNR fetches a booking with its passengers. found is false for an
// unknown PNR.
func (r BookingRepo) GetByPNR(pnr string) (models.Booking, bool, error) {
	db := r.db()

	var b models.Booking
	var status string
	err := db.QueryRow(`
		SELECT id, pnr, train_number, user_id, DATE_FORMAT(journey_date, '%Y-%m-%d'), class_type,
		       seat_count, total_fare, status, DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM bookings
		WHERE pnr = ?
		LIMIT 1
	`, pnr).Scan(
		&b.ID,
		&b.PNR,
		&b.TrainNumber,
		&b.UserID,
		&b.JourneyDate,
		&b.ClassType,
		&b.SeatCount,
		&b.TotalFare,
		&status,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, false, nil
		}
		return models.Booking{}, false, err
	}
	b.Status = models.BookingStatus(status)

	rows, err := db.Query(`
		SELECT name, seat_number
		FROM booking_passengers
		WHERE booking_id = ?
		ORDER BY id ASC
	`, b.ID)
	if err != nil {
		return models.Booking{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.Name, &p.SeatNumber); err != nil {
			return models.Booking{}, false, err
		}
		b.Passengers = append(b.Passengers, p)
	}
	if err := rows.Err(); err != nil {
		return models.Booking{}, false, err
	}
	return b, true, nil
}

// MarkCancelled flips CONFIRMED to CANCELLED. The status guard makes the
// transition the atomic gate: under concurrent cancels of the same PNR
// exactly one caller sees true, and only that caller releases inventory.
func (r BookingRepo) MarkCancelled(pnr string) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET status = ?, updated_at = NOW()
		WHERE pnr = ? AND status = ?
	`, string(models.BookingCancelled), pnr, string(models.BookingConfirmed))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
