package ds

import (
	"errors"
	"fmt"
)

// ErrMalformedRow marks a stored row that cannot be turned back into a Ship.
var ErrMalformedRow = errors.New("malformed ship row")

// ShipRow is the persisted shape of a Ship: one table for both variants,
// told apart by Type. Columns that do not apply to a variant are NULL.
type ShipRow struct {
	RegistrationID string  `gorm:"column:registration_id;index" json:"registration_id"`
	Nationality    string  `gorm:"column:nationality" json:"nationality"`
	Volume         float64 `gorm:"column:volume" json:"volume"`
	PassengerCount *int    `gorm:"column:passenger_count" json:"passenger_count"`
	CarriesLiquids *bool   `gorm:"column:carries_liquids" json:"carries_liquids"`
	Type           string  `gorm:"column:type" json:"type"`
}

func (ShipRow) TableName() string {
	return "ships"
}

// RowFromShip encodes a ship into its row form.
func RowFromShip(s Ship) (ShipRow, error) {
	row := ShipRow{
		RegistrationID: s.RegistrationID(),
		Nationality:    s.Nationality(),
		Volume:         s.Volume(),
	}
	switch v := s.(type) {
	case *SailingVessel:
		passengers := v.PassengerCount()
		row.PassengerCount = &passengers
		row.Type = string(KindSailing)
	case *CargoVessel:
		liquids := v.CarriesLiquids()
		row.CarriesLiquids = &liquids
		row.Type = string(KindCargo)
	default:
		return ShipRow{}, fmt.Errorf("%w: %T", ErrUnknownKind, s)
	}
	return row, nil
}

// Ship decodes the row. Any failure wraps ErrMalformedRow.
func (r ShipRow) Ship() (Ship, error) {
	kind, err := ParseKind(r.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedRow, r.RegistrationID, err)
	}

	var ship Ship
	switch kind {
	case KindSailing:
		passengers := 0
		if r.PassengerCount != nil {
			passengers = *r.PassengerCount
		}
		ship, err = NewSailingVessel(r.RegistrationID, r.Nationality, r.Volume, passengers)
	case KindCargo:
		liquids := false
		if r.CarriesLiquids != nil {
			liquids = *r.CarriesLiquids
		}
		ship, err = NewCargoVessel(r.RegistrationID, r.Nationality, r.Volume, liquids)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedRow, r.RegistrationID, err)
	}
	return ship, nil
}
