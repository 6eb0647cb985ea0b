// Package registry registers ships arriving at the port and aggregates the
// capacity of the fleet. It works against any repository.Repository.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"port_registry/internal/app/ds"
	"port_registry/internal/app/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateRegistration = errors.New("a ship with that registration id is already registered")
	ErrVolumeOutOfRange      = fmt.Errorf("volume must be between 0 and %d: %w", ds.MaxVolume, ds.ErrVolumeOutOfRange)
	ErrNotStored             = errors.New("repository did not store the ship")
)

// Registration carries the fields of a registration request. Kind is 'v'
// for a sailing vessel or 'c' for a cargo vessel, in either case.
type Registration struct {
	RegistrationID string
	Nationality    string
	Volume         float64
	Kind           rune
	Passengers     int
	CarriesLiquids bool
}

type Registry struct {
	repo repository.Repository
	// mu serializes the uniqueness check with the insert.
	mu sync.Mutex
}

func New(repo repository.Repository) *Registry {
	return &Registry{repo: repo}
}

// Register validates the request and stores the new ship. Uniqueness is
// checked before volume, so a request breaking both rules reports
// ErrDuplicateRegistration.
func (r *Registry) Register(ctx context.Context, req Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken, err := r.IsRegistrationIDTaken(ctx, req.RegistrationID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, req.RegistrationID)
	}

	if !ds.VolumeAllowed(req.Volume) {
		return fmt.Errorf("%w: got %v", ErrVolumeOutOfRange, req.Volume)
	}

	ship, err := newShip(req)
	if err != nil {
		return err
	}

	stored, err := r.repo.Insert(ctx, ship)
	if err != nil {
		return fmt.Errorf("register %s: %w", req.RegistrationID, err)
	}
	if !stored {
		return fmt.Errorf("%w: %s", ErrNotStored, req.RegistrationID)
	}

	logrus.WithFields(logrus.Fields{
		"registration_id": ship.RegistrationID(),
		"type":            ship.Kind(),
	}).Info("ship registered")
	return nil
}

func newShip(req Registration) (ds.Ship, error) {
	kind, err := ds.KindFromCode(req.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ds.KindSailing:
		return ds.NewSailingVessel(req.RegistrationID, req.Nationality, req.Volume, req.Passengers)
	default:
		return ds.NewCargoVessel(req.RegistrationID, req.Nationality, req.Volume, req.CarriesLiquids)
	}
}

// TotalCapacity sums the capacity of every stored ship. An empty fleet is 0.
func (r *Registry) TotalCapacity(ctx context.Context) (float64, error) {
	ships, err := r.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("total capacity: %w", err)
	}
	var total float64
	for _, s := range ships {
		total += s.Capacity()
	}
	return total, nil
}

func (r *Registry) IsRegistrationIDTaken(ctx context.Context, id string) (bool, error) {
	_, found, err := r.repo.FindByRegistrationID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check registration id %s: %w", id, err)
	}
	return found, nil
}

func (r *Registry) Ships(ctx context.Context) ([]ds.Ship, error) {
	ships, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	return ships, nil
}

// Ship returns the ship registered under id, or found=false.
func (r *Registry) Ship(ctx context.Context, id string) (ds.Ship, bool, error) {
	ship, found, err := r.repo.FindByRegistrationID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("find ship %s: %w", id, err)
	}
	return ship, found, nil
}
