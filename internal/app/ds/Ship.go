package ds

import (
	"errors"
	"fmt"
	"strings"
)

// MaxVolume is the largest volume, in m3, a ship may declare at registration.
const MaxVolume = 1000

var (
	ErrVolumeOutOfRange   = errors.New("volume out of range")
	ErrNegativePassengers = errors.New("passenger count must not be negative")
	ErrUnknownKind        = errors.New("unknown ship kind")
)

// Kind is the discriminator stored alongside every ship.
type Kind string

const (
	KindSailing Kind = "velero"
	KindCargo   Kind = "carguero"
)

// ParseKind matches a stored discriminator case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindSailing):
		return KindSailing, nil
	case string(KindCargo):
		return KindCargo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// KindFromCode maps the one-letter registration code ('v' or 'c', any case).
func KindFromCode(code rune) (Kind, error) {
	switch code {
	case 'v', 'V':
		return KindSailing, nil
	case 'c', 'C':
		return KindCargo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, code)
	}
}

// Ship is a vessel registered at the port. Implementations are immutable.
type Ship interface {
	RegistrationID() string
	Nationality() string
	Volume() float64
	Kind() Kind
	// Capacity is the cargo the ship can take, in m3.
	Capacity() float64
}

type base struct {
	registrationID string
	nationality    string
	volume         float64
}

func (b base) RegistrationID() string { return b.registrationID }
func (b base) Nationality() string    { return b.nationality }
func (b base) Volume() float64        { return b.volume }

// VolumeAllowed reports whether v is inside [0, MaxVolume].
func VolumeAllowed(v float64) bool {
	return v >= 0 && v <= MaxVolume
}

func newBase(registrationID, nationality string, volume float64) (base, error) {
	if !VolumeAllowed(volume) {
		return base{}, fmt.Errorf("%w: %v not in [0, %d]", ErrVolumeOutOfRange, volume, MaxVolume)
	}
	return base{registrationID: registrationID, nationality: nationality, volume: volume}, nil
}

type SailingVessel struct {
	base
	passengers int
}

func NewSailingVessel(registrationID, nationality string, volume float64, passengers int) (*SailingVessel, error) {
	b, err := newBase(registrationID, nationality, volume)
	if err != nil {
		return nil, err
	}
	if passengers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativePassengers, passengers)
	}
	return &SailingVessel{base: b, passengers: passengers}, nil
}

func (s *SailingVessel) Kind() Kind          { return KindSailing }
func (s *SailingVessel) PassengerCount() int { return s.passengers }

// Capacity halves the usable volume once ten or more passengers are aboard.
func (s *SailingVessel) Capacity() float64 {
	if s.passengers < 10 {
		return s.volume
	}
	return s.volume * 0.5
}

type CargoVessel struct {
	base
	liquids bool
}

func NewCargoVessel(registrationID, nationality string, volume float64, liquids bool) (*CargoVessel, error) {
	b, err := newBase(registrationID, nationality, volume)
	if err != nil {
		return nil, err
	}
	return &CargoVessel{base: b, liquids: liquids}, nil
}

func (c *CargoVessel) Kind() Kind           { return KindCargo }
func (c *CargoVessel) CarriesLiquids() bool { return c.liquids }

// Capacity accounts for tank space when the vessel carries liquids.
func (c *CargoVessel) Capacity() float64 {
	if c.liquids {
		return c.volume * 0.6
	}
	return c.volume * 0.8
}
