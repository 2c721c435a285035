package types

import (
	"naija-events/internal/models"
)

// OrganizerDashboardData represents data for the organizer dashboard
type OrganizerDashboardData struct {
	TotalEvents      int             `json:"total_events"`
	TotalTicketsSold int             `json:"total_tickets_sold"`
	TotalRevenue     models.Money    `json:"total_revenue"` // completed orders only
	TotalCheckedIn   int             `json:"total_checked_in"`
	RecentOrders     []*models.Order `json:"recent_orders"`
	UpcomingEvents   []*models.Event `json:"upcoming_events"`
	PastEvents       []*models.Event `json:"past_events"`
}
