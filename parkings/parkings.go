// Package parkings manages the parking-slot catalog: listing the known
// slots and registering new ones.
package parkings

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cgibeparking/parking-api/auth"
)

// Parking is one reservable slot.
type Parking struct {
	ParkingID string `json:"parkingId"`
	Name      string `json:"name"`
}

const (
	msgParkingIDInvalid = "Parking error."
	msgNameInvalid      = "name error. name needs to longer than 5 characters"
)

// Validate runs the slot shape rules.
func (p Parking) Validate() error {
	if err := validation.Validate(p.ParkingID,
		validation.Required.Error(msgParkingIDInvalid),
		validation.Length(2, 0).Error(msgParkingIDInvalid),
	); err != nil {
		return validationError(err)
	}

	if err := validation.Validate(p.Name,
		validation.Required.Error(msgNameInvalid),
		validation.Length(6, 0).Error(msgNameInvalid),
	); err != nil {
		return validationError(err)
	}

	return nil
}

func validationError(err error) error {
	return goerrors.New(err.Error(), goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest)
}

// ErrParkingExists is returned when a slot id is already registered.
var ErrParkingExists = goerrors.New("Parking with that parkingId exists.", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict)

// Store is the Parkings collection, keyed by parkingId.
type Store interface {
	Get(ctx context.Context, parkingID string) (*Parking, error)
	Put(ctx context.Context, parking *Parking) error
	Scan(ctx context.Context) ([]Parking, error)
}

// Service implements the catalog operations over an injected store.
type Service struct {
	store  Store
	logger auth.Logger
}

func NewService(store Store) *Service {
	return &Service{store: store, logger: noopLogger{}}
}

func (s *Service) WithLogger(logger auth.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// List returns every known slot.
func (s *Service) List(ctx context.Context) ([]Parking, error) {
	items, err := s.store.Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to scan parkings")
	}
	return items, nil
}

// Add validates and registers a slot. The existence check and the write
// are two store round-trips with no isolation, the same accepted race as
// user registration.
func (s *Service) Add(ctx context.Context, parking Parking) (*Parking, error) {
	if err := parking.Validate(); err != nil {
		return nil, err
	}

	_, err := s.store.Get(ctx, parking.ParkingID)
	switch {
	case err == nil:
		return nil, ErrParkingExists
	case !goerrors.IsNotFound(err):
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing parking")
	}

	if err := s.store.Put(ctx, &parking); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store parking")
	}

	s.logger.Info("parking %s added", parking.ParkingID)
	return &parking, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
