package repository

import (
	"context"
	"errors"
	"fmt"

	"port_registry/internal/app/config"
	"port_registry/internal/app/ds"
	"port_registry/internal/app/dsn"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrStorageUnavailable wraps every failure to reach or query a backend.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Repository is the storage capability the registry runs against. It does
// not enforce uniqueness; that is the caller's job.
type Repository interface {
	// ListAll returns every stored ship. Order is not part of the contract.
	ListAll(ctx context.Context) ([]ds.Ship, error)
	// FindByRegistrationID matches id exactly. A miss is (nil, false, nil).
	FindByRegistrationID(ctx context.Context, id string) (ds.Ship, bool, error)
	// Insert stores ship and reports whether the store changed.
	Insert(ctx context.Context, ship ds.Ship) (bool, error)
}

const (
	KindMemory = "memory"
	KindSQL    = "sql"
	KindRedis  = "redis"
)

// New builds the backend selected by conf.Repository. An empty value gives
// the in-memory store.
func New(ctx context.Context, conf *config.Config) (Repository, error) {
	switch conf.Repository {
	case "", KindMemory:
		return NewMemory(), nil
	case KindSQL:
		open, err := Dialector(conf)
		if err != nil {
			return nil, err
		}
		return NewSQL(open), nil
	case KindRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     conf.RedisEndpoint,
			Password: conf.RedisPassword,
			DB:       0,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("%w: redis ping: %v", ErrStorageUnavailable, err)
		}
		return NewRedis(rdb), nil
	default:
		return nil, fmt.Errorf("unknown repository %q", conf.Repository)
	}
}

// Dialector returns a factory producing a fresh gorm dialector for the
// configured SQL driver.
func Dialector(conf *config.Config) (func() gorm.Dialector, error) {
	switch conf.SQLDriver {
	case "", "sqlite":
		path := conf.SQLitePath
		if path == "" {
			path = config.DefaultSQLitePath
		}
		return func() gorm.Dialector { return sqlite.Open(path) }, nil
	case "postgres":
		postgresString := dsn.FromEnv()
		return func() gorm.Dialector { return postgres.Open(postgresString) }, nil
	default:
		return nil, fmt.Errorf("unknown sql driver %q", conf.SQLDriver)
	}
}

func storageError(op string, err error) error {
	logrus.WithField("op", op).Errorf("storage error: %v", err)
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
