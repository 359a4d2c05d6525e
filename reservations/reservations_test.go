package reservations_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgibeparking/parking-api/parkings"
	"github.com/cgibeparking/parking-api/reservations"
	"github.com/cgibeparking/parking-api/store/memstore"
)

func newFixture(t *testing.T, slots ...string) (*reservations.Service, *memstore.Reservations) {
	t.Helper()
	catalog := memstore.NewParkings()
	for _, id := range slots {
		require.NoError(t, catalog.Put(context.Background(), &parkings.Parking{
			ParkingID: id,
			Name:      "Garage " + id,
		}))
	}
	store := memstore.NewReservations()
	return reservations.NewService(store, catalog), store
}

func TestReservationValidate(t *testing.T) {
	valid := reservations.Reservation{
		ParkingID:       "P1",
		ReservationDate: "2024-06-10",
		UserID:          "alice1",
	}

	tests := []struct {
		name    string
		mutate  func(*reservations.Reservation)
		wantMsg string
	}{
		{
			name:   "Valid",
			mutate: func(r *reservations.Reservation) {},
		},
		{
			name:    "ParkingId too short",
			mutate:  func(r *reservations.Reservation) { r.ParkingID = "P" },
			wantMsg: "Parking error.",
		},
		{
			name:    "UserId too short",
			mutate:  func(r *reservations.Reservation) { r.UserID = "alice" },
			wantMsg: "UserId error. UserId needs to longer than 5 characters",
		},
		{
			name:    "Date wrong shape",
			mutate:  func(r *reservations.Reservation) { r.ReservationDate = "10-06-2024" },
			wantMsg: "Date error. Date needs to be in YYYY-MM-DD format",
		},
		{
			name:    "Date off the calendar",
			mutate:  func(r *reservations.Reservation) { r.ReservationDate = "2024-02-30" },
			wantMsg: "Date error. Date needs to be in YYYY-MM-DD format",
		},
		{
			name:    "Date missing",
			mutate:  func(r *reservations.Reservation) { r.ReservationDate = "" },
			wantMsg: "Date error. Date needs to be in YYYY-MM-DD format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			var rich *goerrors.Error
			require.True(t, errors.As(err, &rich))
			assert.Equal(t, tt.wantMsg, rich.Message)
		})
	}
}

func TestServiceAdd(t *testing.T) {
	svc, store := newFixture(t, "P1")

	booked, err := svc.Add(context.Background(), reservations.Reservation{
		ParkingID:       "P1",
		ReservationDate: "2024-06-10",
		UserID:          "alice1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, booked.ID)

	stored, err := store.Get(context.Background(), "P1", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, booked.ID, stored.ID)
	assert.Equal(t, "alice1", stored.UserID)
}

func TestServiceAddDoubleBooking(t *testing.T) {
	svc, _ := newFixture(t, "P1")

	first := reservations.Reservation{
		ParkingID:       "P1",
		ReservationDate: "2024-06-10",
		UserID:          "alice1",
	}
	_, err := svc.Add(context.Background(), first)
	require.NoError(t, err)

	// same slot and date, different user
	second := first
	second.UserID = "bobby1"
	booked, err := svc.Add(context.Background(), second)
	assert.Nil(t, booked)
	assert.Equal(t, reservations.ErrReservationExists, err)

	// same slot, next day is fine
	third := first
	third.ReservationDate = "2024-06-11"
	_, err = svc.Add(context.Background(), third)
	assert.NoError(t, err)
}

func TestServiceListByDate(t *testing.T) {
	svc, _ := newFixture(t, "P1", "P2", "P3")

	seed := []reservations.Reservation{
		{ParkingID: "P1", ReservationDate: "2024-06-10", UserID: "alice1"},
		{ParkingID: "P2", ReservationDate: "2024-06-10", UserID: "bobby1"},
		{ParkingID: "P2", ReservationDate: "2024-06-11", UserID: "carol1"},
	}
	for _, r := range seed {
		_, err := svc.Add(context.Background(), r)
		require.NoError(t, err)
	}

	byDate, err := svc.ListByDate(context.Background(), "2024-06-10")
	require.NoError(t, err)
	// one bucket per known slot, in catalog order, empty buckets included
	require.Len(t, byDate, 3)
	require.Len(t, byDate[0], 1)
	assert.Equal(t, "alice1", byDate[0][0].UserID)
	require.Len(t, byDate[1], 1)
	assert.Equal(t, "bobby1", byDate[1][0].UserID)
	assert.Empty(t, byDate[2])
}

func TestServiceListByMonthPrefix(t *testing.T) {
	svc, _ := newFixture(t, "P1")

	for _, date := range []string{"2024-06-10", "2024-06-11", "2024-07-01"} {
		_, err := svc.Add(context.Background(), reservations.Reservation{
			ParkingID:       "P1",
			ReservationDate: date,
			UserID:          "alice1",
		})
		require.NoError(t, err)
	}

	byDate, err := svc.ListByDate(context.Background(), "2024-06")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Len(t, byDate[0], 2)
}

func TestServiceDelete(t *testing.T) {
	svc, store := newFixture(t, "P1")

	_, err := svc.Add(context.Background(), reservations.Reservation{
		ParkingID:       "P1",
		ReservationDate: "2024-06-10",
		UserID:          "alice1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "P1", "2024-06-10"))

	_, err = store.Get(context.Background(), "P1", "2024-06-10")
	assert.True(t, goerrors.IsNotFound(err))

	// cancelling again is still a success
	assert.NoError(t, svc.Delete(context.Background(), "P1", "2024-06-10"))
}
