package repositories

import (
	"testing"

	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func sleeperKey() models.InventoryKey {
	return models.InventoryKey{TrainNumber: "T100", JourneyDate: "2024-05-01", ClassType: "SL"}
}

func TestInventoryReserveGuardWinsAndLoses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := InventoryRepo{DB: db}
	key := sleeperKey()

	mock.ExpectExec("UPDATE inventory").
		WithArgs(2, key.TrainNumber, key.JourneyDate, key.ClassType, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.Reserve(key, 2)
	if err != nil || !ok {
		t.Fatalf("expected guarded update to win: ok=%t err=%v", ok, err)
	}

	mock.ExpectExec("UPDATE inventory").
		WithArgs(2, key.TrainNumber, key.JourneyDate, key.ClassType, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.Reserve(key, 2)
	if err != nil || ok {
		t.Fatalf("guard failure must report false without error: ok=%t err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInventoryEnsureRecordIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := InventoryRepo{DB: db}

	rec := models.InventoryRecord{TrainNumber: "T100", JourneyDate: "2024-05-01", ClassType: "SL", TotalSeats: 72}

	// First call inserts, second hits the unique key and affects nothing.
	mock.ExpectExec("INSERT IGNORE INTO inventory").
		WithArgs(rec.TrainNumber, rec.JourneyDate, rec.ClassType, rec.TotalSeats).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT IGNORE INTO inventory").
		WithArgs(rec.TrainNumber, rec.JourneyDate, rec.ClassType, rec.TotalSeats).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.EnsureRecord(rec); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := repo.EnsureRecord(rec); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInventoryReleaseFullAndClamped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := InventoryRepo{DB: db}
	key := sleeperKey()

	// Full decrement: enough seats held, the floored update changes the row.
	mock.ExpectQuery("SELECT total_seats, confirmed_seats").
		WithArgs(key.TrainNumber, key.JourneyDate, key.ClassType).
		WillReturnRows(sqlmock.NewRows([]string{"total_seats", "confirmed_seats"}).AddRow(10, 5))
	mock.ExpectExec("GREATEST").
		WithArgs(3, key.TrainNumber, key.JourneyDate, key.ClassType).
		WillReturnResult(sqlmock.NewResult(0, 1))
	released, clamped, err := repo.Release(key, 3)
	if err != nil || !released || clamped {
		t.Fatalf("expected full release: released=%t clamped=%t err=%v", released, clamped, err)
	}

	// Underflow: a single floored update still runs; the anomaly report
	// comes from the read, not from a second mutation.
	mock.ExpectQuery("SELECT total_seats, confirmed_seats").
		WithArgs(key.TrainNumber, key.JourneyDate, key.ClassType).
		WillReturnRows(sqlmock.NewRows([]string{"total_seats", "confirmed_seats"}).AddRow(10, 1))
	mock.ExpectExec("GREATEST").
		WithArgs(5, key.TrainNumber, key.JourneyDate, key.ClassType).
		WillReturnResult(sqlmock.NewResult(0, 1))
	released, clamped, err = repo.Release(key, 5)
	if err != nil || released || !clamped {
		t.Fatalf("expected clamped release: released=%t clamped=%t err=%v", released, clamped, err)
	}

	// Already at zero: the guard keeps the statement a no-op.
	mock.ExpectQuery("SELECT total_seats, confirmed_seats").
		WithArgs(key.TrainNumber, key.JourneyDate, key.ClassType).
		WillReturnRows(sqlmock.NewRows([]string{"total_seats", "confirmed_seats"}).AddRow(10, 0))
	mock.ExpectExec("GREATEST").
		WithArgs(1, key.TrainNumber, key.JourneyDate, key.ClassType).
		WillReturnResult(sqlmock.NewResult(0, 0))
	released, clamped, err = repo.Release(key, 1)
	if err != nil || released || clamped {
		t.Fatalf("expected no-op release: released=%t clamped=%t err=%v", released, clamped, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInventoryGetMissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := InventoryRepo{DB: db}
	key := sleeperKey()

	mock.ExpectQuery("SELECT total_seats, confirmed_seats").
		WithArgs(key.TrainNumber, key.JourneyDate, key.ClassType).
		WillReturnRows(sqlmock.NewRows([]string{"total_seats", "confirmed_seats"}))

	_, found, err := repo.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected found=false for a never-reserved key")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInventorySnapshotDefaultsMissingRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := InventoryRepo{DB: db}

	mock.ExpectQuery("LEFT JOIN inventory").
		WithArgs("2024-05-01", "T100").
		WillReturnRows(sqlmock.NewRows([]string{"class_type", "total_seats", "confirmed_seats"}).
			AddRow("SL", 72, 70).
			AddRow("3A", 48, 0))

	recs, err := repo.Snapshot("T100", "2024-05-01")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(recs))
	}
	if recs[0].ClassType != "SL" || recs[0].Available() != 2 {
		t.Fatalf("wrong SL record: %+v", recs[0])
	}
	if recs[1].ClassType != "3A" || recs[1].Available() != 48 {
		t.Fatalf("class without an inventory row must be fully available: %+v", recs[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
