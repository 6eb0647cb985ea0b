package repository

import (
	"context"
	"database/sql"

	"port_registry/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLRepository stores ships in the single "ships" table. Every call opens
// its own connection and closes it before returning.
type SQLRepository struct {
	open func() gorm.Dialector
}

func NewSQL(open func() gorm.Dialector) *SQLRepository {
	return &SQLRepository{open: open}
}

func (r *SQLRepository) withConn(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	db, err := gorm.Open(r.open(), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return storageError(op, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return storageError(op, err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logrus.WithField("op", op).Warnf("closing connection: %v", err)
		}
	}()

	if err := fn(db.WithContext(ctx)); err != nil {
		return storageError(op, err)
	}
	return nil
}

// Migrate creates the ships table if it does not exist yet.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	return r.withConn(ctx, "migrate", func(db *gorm.DB) error {
		return db.AutoMigrate(&ds.ShipRow{})
	})
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]ds.Ship, error) {
	var ships []ds.Ship
	err := r.withConn(ctx, "list ships", func(db *gorm.DB) error {
		rows, err := db.Model(&ds.ShipRow{}).Rows()
		if err != nil {
			return err
		}
		ships, err = scanShips(db, rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ships, nil
}

func (r *SQLRepository) FindByRegistrationID(ctx context.Context, id string) (ds.Ship, bool, error) {
	var ships []ds.Ship
	err := r.withConn(ctx, "find ship", func(db *gorm.DB) error {
		rows, err := db.Model(&ds.ShipRow{}).Where("registration_id = ?", id).Limit(1).Rows()
		if err != nil {
			return err
		}
		ships, err = scanShips(db, rows)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if len(ships) == 0 {
		return nil, false, nil
	}
	return ships[0], true, nil
}

func (r *SQLRepository) Insert(ctx context.Context, ship ds.Ship) (bool, error) {
	row, err := ds.RowFromShip(ship)
	if err != nil {
		return false, err
	}
	var affected int64
	err = r.withConn(ctx, "insert ship", func(db *gorm.DB) error {
		res := db.Create(&row)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// scanShips materializes every row it can; rows that fail to scan or decode
// are logged and skipped.
func scanShips(db *gorm.DB, rows *sql.Rows) ([]ds.Ship, error) {
	defer rows.Close()

	ships := make([]ds.Ship, 0)
	for rows.Next() {
		var row ds.ShipRow
		if err := db.ScanRows(rows, &row); err != nil {
			logrus.WithError(err).Warn(ds.ErrMalformedRow.Error() + ", skipping")
			continue
		}
		ship, err := row.Ship()
		if err != nil {
			logrus.WithError(err).Warn("skipping ship row")
			continue
		}
		ships = append(ships, ship)
	}
	return ships, rows.Err()
}
