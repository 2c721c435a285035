package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"naija-events/internal/models"
	"naija-events/internal/repositories"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	orders := &mockOrderRepository{}
	events := &mockEventRepository{}
	svc := NewDashboardService(orders, events)
	svc.now = fixedClock
	ctx := context.Background()

	at := func(days int) *models.Event {
		start := testNow.AddDate(0, 0, days)
		return &models.Event{ID: "e" + start.Format("0102"), StartDate: start, EndDate: start.Add(2 * time.Hour)}
	}
	later, soon, today, past := at(30), at(3), at(0), at(-10)

	orders.On("GetStatsByOrganizer", mock.Anything, "organizer-1").Return(&repositories.OrganizerStats{
		TotalEvents: 4, TotalTicketsSold: 12, TotalRevenue: 3085000, TotalCheckedIn: 5,
	}, nil)
	orders.On("GetRecentByOrganizer", mock.Anything, "organizer-1", recentOrdersLimit).Return(nil, nil)
	events.On("GetByOrganizer", mock.Anything, "organizer-1").Return([]*models.Event{later, soon, today, past}, nil)

	data, err := svc.GetDashboard(ctx, "organizer-1")
	require.NoError(t, err)

	assert.Equal(t, 12, data.TotalTicketsSold)
	assert.Equal(t, models.Money(3085000), data.TotalRevenue)
	assert.Equal(t, 5, data.TotalCheckedIn)
	assert.NotNil(t, data.RecentOrders)
	assert.Empty(t, data.RecentOrders)
	assert.Equal(t, []*models.Event{today, soon, later}, data.UpcomingEvents)
	assert.Equal(t, []*models.Event{past}, data.PastEvents)
}

func TestDashboardService_GetDashboard_StatsError(t *testing.T) {
	orders := &mockOrderRepository{}
	events := &mockEventRepository{}
	orders.On("GetStatsByOrganizer", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	orders.On("GetRecentByOrganizer", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	events.On("GetByOrganizer", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	_, err := NewDashboardService(orders, events).GetDashboard(context.Background(), "organizer-1")
	assert.ErrorContains(t, err, "failed to get dashboard stats")
}
