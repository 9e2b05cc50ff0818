package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"cueclub/internal/model"
	"cueclub/internal/repository"
)

// StatsService recomputes derived summaries from raw records on every
// call. Nothing is cached or incrementally maintained: the numbers are
// always a pure function of the stores.
type StatsService struct {
	clubRepo    *repository.ClubRepository
	bookingRepo *repository.BookingRepository
	sessionRepo *repository.SessionRepository
	playerRepo  *repository.PlayerRepository
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(
	clubRepo *repository.ClubRepository,
	bookingRepo *repository.BookingRepository,
	sessionRepo *repository.SessionRepository,
	playerRepo *repository.PlayerRepository,
) *StatsService {
	return &StatsService{
		clubRepo:    clubRepo,
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
		playerRepo:  playerRepo,
	}
}

// ClubStats computes the club dashboard summary as of now.
//
// Occupancy is the booking-count approximation carried over from the
// original reporting: today's booking count over table count, clamped to
// 100. Whether it should instead be reserved table-hours over open hours
// is an open product question, so the approximation stands.
func (s *StatsService) ClubStats(ctx context.Context, clubID string, now time.Time) (*model.ClubStats, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}

	stats := &model.ClubStats{
		TotalPlayers:  len(players),
		TotalBookings: len(bookings),
	}

	year, month, _ := now.Date()
	for _, sess := range sessions {
		sy, sm, _ := sess.StartTime.In(now.Location()).Date()
		if sy == year && sm == month && !sess.IsOpen() {
			stats.MonthlyRevenue += sess.TotalAmount
		}
		if sess.IsOpen() {
			stats.ActiveTables++
		}
		stats.TotalFoodOrders += len(sess.FoodOrders)
		if !sess.IsOpen() && !sess.Paid {
			stats.OutstandingPayments += sess.TotalAmount
		}
	}

	todayBookings := lo.CountBy(bookings, func(b model.Booking) bool {
		return model.SameLocalDay(b.StartTime, now)
	})
	if n := len(club.Tables); n > 0 {
		rate := float64(todayBookings) / float64(n) * 100
		if rate > 100 {
			rate = 100
		}
		stats.OccupancyRate = rate
	}

	return stats, nil
}

// BookingStats summarizes a club's booking history.
func (s *StatsService) BookingStats(ctx context.Context, clubID string, now time.Time) (*model.BookingStats, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}

	stats := &model.BookingStats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case model.BookingConfirmed:
			stats.ConfirmedBookings++
		case model.BookingCancelled:
			stats.CancelledBookings++
		case model.BookingNoShow:
			stats.NoShows++
		}
		if b.PaymentStatus == model.PaymentFull || b.PaymentStatus == model.PaymentDeposit {
			stats.RevenueFromBookings += b.PaymentAmount
		}
	}

	todayBookings := lo.CountBy(bookings, func(b model.Booking) bool {
		return model.SameLocalDay(b.StartTime, now)
	})
	if n := len(club.Tables); n > 0 {
		rate := float64(todayBookings) / float64(n) * 100
		if rate > 100 {
			rate = 100
		}
		stats.OccupancyRate = rate
	}

	return stats, nil
}
