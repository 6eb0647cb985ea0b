package repository

import (
	"context"
	"fmt"
	"strconv"

	"port_registry/internal/app/ds"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	redisShipPrefix = "ship:"
	redisShipIndex  = "ships"
)

// RedisRepository keeps each ship as a hash under "ship:<id>" and the
// insertion order in the "ships" list. Inserting an id twice overwrites the
// hash and lists the id twice.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) ListAll(ctx context.Context) ([]ds.Ship, error) {
	ids, err := r.rdb.LRange(ctx, redisShipIndex, 0, -1).Result()
	if err != nil {
		return nil, storageError("list ships", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, redisShipPrefix+id)
		}
		return nil
	})
	if err != nil {
		return nil, storageError("list ships", err)
	}

	ships := make([]ds.Ship, 0, len(ids))
	for i, cmd := range cmds {
		ship, err := shipFromHash(cmd.Val())
		if err != nil {
			logrus.WithError(err).WithField("registration_id", ids[i]).Warn("skipping ship hash")
			continue
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

func (r *RedisRepository) FindByRegistrationID(ctx context.Context, id string) (ds.Ship, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, redisShipPrefix+id).Result()
	if err != nil {
		return nil, false, storageError("find ship", err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	ship, err := shipFromHash(fields)
	if err != nil {
		logrus.WithError(err).WithField("registration_id", id).Warn("skipping ship hash")
		return nil, false, nil
	}
	return ship, true, nil
}

func (r *RedisRepository) Insert(ctx context.Context, ship ds.Ship) (bool, error) {
	row, err := ds.RowFromShip(ship)
	if err != nil {
		return false, err
	}
	fields := map[string]interface{}{
		"registration_id": row.RegistrationID,
		"nationality":     row.Nationality,
		"volume":          strconv.FormatFloat(row.Volume, 'f', -1, 64),
		"type":            row.Type,
	}
	if row.PassengerCount != nil {
		fields["passenger_count"] = strconv.Itoa(*row.PassengerCount)
	}
	if row.CarriesLiquids != nil {
		liquids := "0"
		if *row.CarriesLiquids {
			liquids = "1"
		}
		fields["carries_liquids"] = liquids
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisShipPrefix+row.RegistrationID, fields)
		pipe.RPush(ctx, redisShipIndex, row.RegistrationID)
		return nil
	})
	if err != nil {
		return false, storageError("insert ship", err)
	}
	return true, nil
}

func shipFromHash(fields map[string]string) (ds.Ship, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: missing hash", ds.ErrMalformedRow)
	}
	row := ds.ShipRow{
		RegistrationID: fields["registration_id"],
		Nationality:    fields["nationality"],
		Type:           fields["type"],
	}
	volume, err := strconv.ParseFloat(fields["volume"], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: volume: %v", ds.ErrMalformedRow, err)
	}
	row.Volume = volume
	if v, ok := fields["passenger_count"]; ok {
		passengers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: passenger_count: %v", ds.ErrMalformedRow, err)
		}
		row.PassengerCount = &passengers
	}
	if v, ok := fields["carries_liquids"]; ok {
		liquids, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: carries_liquids: %v", ds.ErrMalformedRow, err)
		}
		row.CarriesLiquids = &liquids
	}
	return row.Ship()
}
