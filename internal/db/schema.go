package db

import "database/sql"

// EnsureSchema creates the tables the service owns. Reference data
// (stations, trains, train_classes) is loaded out of band; the unique keys
// below are what the repositories' atomicity arguments rest on.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			code VARCHAR(16) NOT NULL,
			name VARCHAR(255) NOT NULL,
			city VARCHAR(255) NOT NULL DEFAULT '',
			UNIQUE KEY uniq_station_code (code)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS trains (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			train_number VARCHAR(16) NOT NULL,
			name VARCHAR(255) NOT NULL,
			from_station VARCHAR(16) NOT NULL,
			to_station VARCHAR(16) NOT NULL,
			departure_time TIME NOT NULL,
			arrival_time TIME NOT NULL,
			UNIQUE KEY uniq_train_number (train_number),
			KEY idx_route (from_station, to_station)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS train_classes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			train_number VARCHAR(16) NOT NULL,
			class_type VARCHAR(8) NOT NULL,
			total_seats INT NOT NULL,
			fare BIGINT NOT NULL DEFAULT 0,
			UNIQUE KEY uniq_train_class (train_number, class_type)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS inventory (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			train_number VARCHAR(16) NOT NULL,
			journey_date DATE NOT NULL,
			class_type VARCHAR(8) NOT NULL,
			total_seats INT NOT NULL,
			confirmed_seats INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_inventory_key (train_number, journey_date, class_type)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			pnr CHAR(10) NOT NULL,
			train_number VARCHAR(16) NOT NULL,
			user_id BIGINT NOT NULL,
			journey_date DATE NOT NULL,
			class_type VARCHAR(8) NOT NULL,
			seat_count INT NOT NULL,
			total_fare BIGINT NOT NULL DEFAULT 0,
			status VARCHAR(16) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_pnr (pnr),
			KEY idx_train_date (train_number, journey_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS booking_passengers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			seat_number VARCHAR(16) NOT NULL DEFAULT '',
			KEY idx_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(64) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'user',
			status VARCHAR(32) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, ddl := range stmts {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
