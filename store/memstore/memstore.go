// Package memstore implements every store contract over mutex-guarded
// maps. It backs the test suites and offline mode; semantics match the
// durable store: unconditional last-write-wins puts, not-found errors
// for absent keys, prefix queries by linear scan.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/parkings"
	"github.com/cgibeparking/parking-api/reservations"
)

func notFound(what string) error {
	return errors.New(what+" not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound)
}

// Users implements auth.UserStore.
type Users struct {
	mu    sync.RWMutex
	items map[string]auth.User
}

func NewUsers() *Users {
	return &Users{items: map[string]auth.User{}}
}

func (s *Users) Get(_ context.Context, userID string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.items[userID]
	if !ok {
		return nil, notFound("user")
	}
	return &user, nil
}

func (s *Users) Put(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[user.UserID] = *user
	return nil
}

// Registrations implements auth.RegistrationStore.
type Registrations struct {
	mu    sync.RWMutex
	items map[string]auth.PendingRegistration
}

func NewRegistrations() *Registrations {
	return &Registrations{items: map[string]auth.PendingRegistration{}}
}

func (s *Registrations) Get(_ context.Context, token string) (*auth.PendingRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.items[token]
	if !ok {
		return nil, notFound("registration")
	}
	return &reg, nil
}

func (s *Registrations) Put(_ context.Context, reg *auth.PendingRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[reg.Token] = *reg
	return nil
}

func (s *Registrations) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, token)
	return nil
}

// Parkings implements parkings.Store.
type Parkings struct {
	mu    sync.RWMutex
	items map[string]parkings.Parking
}

func NewParkings() *Parkings {
	return &Parkings{items: map[string]parkings.Parking{}}
}

func (s *Parkings) Get(_ context.Context, parkingID string) (*parkings.Parking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parking, ok := s.items[parkingID]
	if !ok {
		return nil, notFound("parking")
	}
	return &parking, nil
}

func (s *Parkings) Put(_ context.Context, parking *parkings.Parking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[parking.ParkingID] = *parking
	return nil
}

func (s *Parkings) Scan(_ context.Context) ([]parkings.Parking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]parkings.Parking, 0, len(s.items))
	for _, parking := range s.items {
		out = append(out, parking)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParkingID < out[j].ParkingID })
	return out, nil
}

// Reservations implements reservations.Store.
type Reservations struct {
	mu    sync.RWMutex
	items map[string]reservations.Reservation
}

func NewReservations() *Reservations {
	return &Reservations{items: map[string]reservations.Reservation{}}
}

func reservationKey(parkingID, date string) string {
	return parkingID + "|" + date
}

func (s *Reservations) Get(_ context.Context, parkingID, date string) (*reservations.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.items[reservationKey(parkingID, date)]
	if !ok {
		return nil, notFound("reservation")
	}
	return &reservation, nil
}

func (s *Reservations) Put(_ context.Context, reservation *reservations.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[reservationKey(reservation.ParkingID, reservation.ReservationDate)] = *reservation
	return nil
}

func (s *Reservations) Delete(_ context.Context, parkingID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, reservationKey(parkingID, date))
	return nil
}

func (s *Reservations) QueryByDatePrefix(_ context.Context, parkingID, datePrefix string) ([]reservations.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []reservations.Reservation{}
	for _, reservation := range s.items {
		if reservation.ParkingID == parkingID && strings.HasPrefix(reservation.ReservationDate, datePrefix) {
			out = append(out, reservation)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReservationDate < out[j].ReservationDate })
	return out, nil
}
