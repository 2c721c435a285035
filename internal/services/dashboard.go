package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"naija-events/internal/models"
	"naija-events/internal/repositories"
	"naija-events/internal/types"
)

const recentOrdersLimit = 10

// OrderStatsRepository interface for organizer sales figures
type OrderStatsRepository interface {
	GetStatsByOrganizer(ctx context.Context, organizerID string) (*repositories.OrganizerStats, error)
	GetRecentByOrganizer(ctx context.Context, organizerID string, limit int) ([]*models.Order, error)
}

// DashboardService assembles the organizer dashboard
type DashboardService struct {
	orderRepo OrderStatsRepository
	eventRepo EventRepository
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(orderRepo OrderStatsRepository, eventRepo EventRepository) *DashboardService {
	return &DashboardService{orderRepo: orderRepo, eventRepo: eventRepo, now: time.Now}
}

// GetDashboard returns sales totals, recent orders and the organizer's events
// split into upcoming (soonest first) and past (latest first)
func (s *DashboardService) GetDashboard(ctx context.Context, organizerID string) (*types.OrganizerDashboardData, error) {
	var (
		stats  *repositories.OrganizerStats
		recent []*models.Order
		events []*models.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if stats, err = s.orderRepo.GetStatsByOrganizer(gctx, organizerID); err != nil {
			return fmt.Errorf("failed to get dashboard stats: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if recent, err = s.orderRepo.GetRecentByOrganizer(gctx, organizerID, recentOrdersLimit); err != nil {
			return fmt.Errorf("failed to get recent orders: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if events, err = s.eventRepo.GetByOrganizer(gctx, organizerID); err != nil {
			return fmt.Errorf("failed to get organizer events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &types.OrganizerDashboardData{
		TotalEvents:      stats.TotalEvents,
		TotalTicketsSold: stats.TotalTicketsSold,
		TotalRevenue:     stats.TotalRevenue,
		TotalCheckedIn:   stats.TotalCheckedIn,
		RecentOrders:     recent,
		UpcomingEvents:   []*models.Event{},
		PastEvents:       []*models.Event{},
	}

	// events arrive latest first
	now := s.now()
	for i := len(events) - 1; i >= 0; i-- {
		if !events[i].EndDate.Before(now) {
			data.UpcomingEvents = append(data.UpcomingEvents, events[i])
		}
	}
	for _, e := range events {
		if e.EndDate.Before(now) {
			data.PastEvents = append(data.PastEvents, e)
		}
	}
	if data.RecentOrders == nil {
		data.RecentOrders = []*models.Order{}
	}

	return data, nil
}
