// Package reservations manages slot reservations: the per-date overview,
// booking, and cancellation. Mutations are admin-gated and stamped with
// the caller's identity.
package reservations

import (
	"context"
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/parkings"
)

// Reservation books one parking slot for one date. The (parkingId,
// reservationDate) pair is the storage key; ID is a synthetic unique id.
type Reservation struct {
	ID              string `json:"id"`
	ParkingID       string `json:"parkingId"`
	ReservationDate string `json:"reservationDate"`
	UserID          string `json:"userId"`
}

const (
	msgParkingIDInvalid = "Parking error."
	msgUserIDInvalid    = "UserId error. UserId needs to longer than 5 characters"
	msgDateInvalid      = "Date error. Date needs to be in YYYY-MM-DD format"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate runs the booking shape rules.
func (r Reservation) Validate() error {
	if err := validation.Validate(r.ParkingID,
		validation.Required.Error(msgParkingIDInvalid),
		validation.Length(2, 0).Error(msgParkingIDInvalid),
	); err != nil {
		return validationError(err)
	}

	if err := validation.Validate(r.UserID,
		validation.Required.Error(msgUserIDInvalid),
		validation.Length(6, 0).Error(msgUserIDInvalid),
	); err != nil {
		return validationError(err)
	}

	if err := validation.Validate(r.ReservationDate,
		validation.Required.Error(msgDateInvalid),
		validation.By(calendarDate),
	); err != nil {
		return validationError(err)
	}

	return nil
}

// calendarDate requires the exact YYYY-MM-DD shape and a date that
// exists on the calendar.
func calendarDate(value any) error {
	s, _ := value.(string)
	if !datePattern.MatchString(s) {
		return errors.New(msgDateInvalid)
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil || d.Format(dateLayout) != s {
		return errors.New(msgDateInvalid)
	}
	return nil
}

func validationError(err error) error {
	return goerrors.New(err.Error(), goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest)
}

// ErrReservationExists is returned when the slot is already booked for
// that date.
var ErrReservationExists = goerrors.New("Reservation with that parkingId and date exists.", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict)

// Store is the Reservations collection, keyed by (parkingId, date).
type Store interface {
	Get(ctx context.Context, parkingID, date string) (*Reservation, error)
	Put(ctx context.Context, reservation *Reservation) error
	Delete(ctx context.Context, parkingID, date string) error
	QueryByDatePrefix(ctx context.Context, parkingID, datePrefix string) ([]Reservation, error)
}

// ParkingScanner is the slice of the parking catalog the overview needs.
type ParkingScanner interface {
	Scan(ctx context.Context) ([]parkings.Parking, error)
}

// Service implements the reservation operations.
type Service struct {
	store   Store
	catalog ParkingScanner
	logger  auth.Logger
	newIDFn func() string
}

func NewService(store Store, catalog ParkingScanner) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		logger:  noopLogger{},
		newIDFn: uuid.NewString,
	}
}

func (s *Service) WithLogger(logger auth.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// ListByDate returns, per known parking slot, the reservations whose
// date starts with the given prefix. The fan-out mirrors the per-slot
// query the store supports natively.
func (s *Service) ListByDate(ctx context.Context, date string) ([][]Reservation, error) {
	slots, err := s.catalog.Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to scan parkings")
	}

	out := make([][]Reservation, 0, len(slots))
	for _, slot := range slots {
		items, err := s.store.QueryByDatePrefix(ctx, slot.ParkingID, date)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query reservations")
		}
		out = append(out, items)
	}
	return out, nil
}

// Add validates and books a reservation. Same non-isolated
// check-then-write as the other collections; last write wins.
func (s *Service) Add(ctx context.Context, reservation Reservation) (*Reservation, error) {
	if err := reservation.Validate(); err != nil {
		return nil, err
	}

	_, err := s.store.Get(ctx, reservation.ParkingID, reservation.ReservationDate)
	switch {
	case err == nil:
		return nil, ErrReservationExists
	case !goerrors.IsNotFound(err):
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing reservation")
	}

	reservation.ID = s.newIDFn()
	if err := s.store.Put(ctx, &reservation); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store reservation")
	}

	s.logger.Info("reservation %s booked for %s on %s", reservation.ID, reservation.ParkingID, reservation.ReservationDate)
	return &reservation, nil
}

// Delete cancels the reservation for the given slot and date. Deleting
// an absent reservation is not an error.
func (s *Service) Delete(ctx context.Context, parkingID, date string) error {
	if err := s.store.Delete(ctx, parkingID, date); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete reservation")
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
