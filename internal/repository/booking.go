package repository

import (
	"context"
	"sort"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

// BookingRepository handles booking persistence. Bookings are stored
// per-club under "bookings:<clubID>"; there is no global booking index.
type BookingRepository struct {
	store store.Store
}

// NewBookingRepository creates a new BookingRepository instance.
func NewBookingRepository(s store.Store) *BookingRepository {
	return &BookingRepository{store: s}
}

// List returns all bookings for a club sorted by start time ascending.
// Ascending start-time order is part of the query contract, not a caller
// concern.
func (r *BookingRepository) List(ctx context.Context, clubID string) ([]model.Booking, error) {
	key := store.BookingsKey(clubID)
	var bookings []model.Booking
	if err := store.GetJSON(ctx, r.store, key, &bookings); err != nil {
		return nil, apperr.Persistence("get", key, err)
	}
	sortByStart(bookings)
	return bookings, nil
}

// GetByID returns one booking of a club.
func (r *BookingRepository) GetByID(ctx context.Context, clubID, bookingID string) (*model.Booking, error) {
	bookings, err := r.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			return &bookings[i], nil
		}
	}
	return nil, apperr.NotFound("booking", bookingID)
}

// Mutate atomically applies fn to the club's full booking list. The
// booking engine runs its conflict check inside fn so that no concurrent
// writer can slip a booking in between check and append.
func (r *BookingRepository) Mutate(ctx context.Context, clubID string, fn func(*[]model.Booking) error) error {
	key := store.BookingsKey(clubID)
	err := store.UpdateJSON(ctx, r.store, key, fn)
	if err != nil {
		if apperr.IsNotFound(err) || apperr.IsValidation(err) || apperr.IsConflict(err) {
			return err
		}
		return apperr.Persistence("update", key, err)
	}
	return nil
}

// MutateOne atomically applies fn to a single booking and returns the
// updated record.
func (r *BookingRepository) MutateOne(ctx context.Context, clubID, bookingID string, fn func(*model.Booking) error) (*model.Booking, error) {
	var updated model.Booking
	err := r.Mutate(ctx, clubID, func(bookings *[]model.Booking) error {
		for i := range *bookings {
			if (*bookings)[i].ID == bookingID {
				if err := fn(&(*bookings)[i]); err != nil {
					return err
				}
				updated = (*bookings)[i]
				return nil
			}
		}
		return apperr.NotFound("booking", bookingID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func sortByStart(bookings []model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}
