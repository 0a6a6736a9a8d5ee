package database

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the offers and reservations tables when they do
// not exist yet.  There is no migration mechanism; the schema is small
// enough that additive changes are applied by hand.
//
// quantity is unsigned as a second line of defence: even if a write
// path other than the conditional decrement ever appeared, the column
// itself cannot hold a negative value.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS offers (
			id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			store_id       VARCHAR(64)     NOT NULL,
			title          VARCHAR(255)    NOT NULL,
			description    TEXT            NULL,
			image_url      VARCHAR(512)    NULL,
			city           VARCHAR(128)    NOT NULL,
			original_price DECIMAL(10,2)   NOT NULL DEFAULT 0,
			price          DECIMAL(10,2)   NOT NULL DEFAULT 0,
			quantity       INT UNSIGNED    NOT NULL DEFAULT 0,
			pickup_start   DATETIME        NOT NULL,
			pickup_end     DATETIME        NOT NULL,
			tags           JSON            NOT NULL,
			created_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_offers_city (city),
			KEY idx_offers_pickup_end (pickup_end)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			offer_id    BIGINT UNSIGNED NOT NULL,
			user_name   VARCHAR(255)    NOT NULL,
			user_phone  VARCHAR(64)     NOT NULL,
			status      ENUM('reserved','picked_up','cancelled') NOT NULL DEFAULT 'reserved',
			pickup_code CHAR(6)         NOT NULL,
			created_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_reservations_offer (offer_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
