package models

import (
	"errors"
	"testing"
	"time"
)

func validEventRequest() *EventCreateRequest {
	return &EventCreateRequest{
		Name:      "Tech Conference 2024",
		StartDate: "2024-03-15T09:00",
		EndDate:   "2024-03-15T17:00",
		Location:  "Lagos Convention Center",
		Category:  "Technology",
		TicketTypes: []TicketTypeCreateRequest{
			{Name: "General Admission", Price: 1500000},
		},
		PricingPlan: PlanPerTicket,
	}
}

func TestValidateEventDetails(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *EventCreateRequest)
		want   map[string]string
	}{
		{
			name:   "valid",
			modify: func(r *EventCreateRequest) {},
			want:   map[string]string{},
		},
		{
			name:   "missing name",
			modify: func(r *EventCreateRequest) { r.Name = "   " },
			want:   map[string]string{"name": "Event name is required"},
		},
		{
			name:   "missing dates",
			modify: func(r *EventCreateRequest) { r.StartDate, r.EndDate = "", "" },
			want: map[string]string{
				"start_date": "Start date is required",
				"end_date":   "End date is required",
			},
		},
		{
			name:   "physical event without location",
			modify: func(r *EventCreateRequest) { r.Location = "" },
			want:   map[string]string{"location": "Location is required for physical events"},
		},
		{
			name:   "online event without location",
			modify: func(r *EventCreateRequest) { r.Location, r.IsOnline = "", true },
			want:   map[string]string{},
		},
		{
			name:   "missing category",
			modify: func(r *EventCreateRequest) { r.Category = "" },
			want:   map[string]string{"category": "Category is required"},
		},
		{
			name:   "unknown category",
			modify: func(r *EventCreateRequest) { r.Category = "Knitting" },
			want:   map[string]string{"category": "Category is not recognised"},
		},
		{
			name:   "end equals start",
			modify: func(r *EventCreateRequest) { r.EndDate = r.StartDate },
			want:   map[string]string{"end_date": "End date must be after start date"},
		},
		{
			name:   "unparsable start",
			modify: func(r *EventCreateRequest) { r.StartDate = "next tuesday" },
			want:   map[string]string{"start_date": "Start date is invalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validEventRequest()
			tt.modify(req)
			got := ValidateEventDetails(req)
			if len(got) != len(tt.want) {
				t.Fatalf("ValidateEventDetails() = %v, want %v", got, tt.want)
			}
			for k, msg := range tt.want {
				if got[k] != msg {
					t.Errorf("ValidateEventDetails()[%q] = %q, want %q", k, got[k], msg)
				}
			}
		})
	}
}

func TestValidateTicketTypes(t *testing.T) {
	zero := 0

	errs := ValidateTicketTypes([]TicketTypeCreateRequest{
		{Name: "General Admission"},
		{Name: "", Price: -1, QuantityAvailable: &zero},
		{Name: "VIP", SalesStartDate: "2024-03-10", SalesEndDate: "2024-03-01"},
	})

	want := map[string]string{
		"ticket_1_name":           "Ticket name is required",
		"ticket_1_price":          "Price cannot be negative",
		"ticket_1_quantity":       "Quantity must be greater than 0",
		"ticket_2_sales_end_date": "Sales end date must be after sales start date",
	}
	if len(errs) != len(want) {
		t.Fatalf("ValidateTicketTypes() = %v, want %v", errs, want)
	}
	for k, msg := range want {
		if errs[k] != msg {
			t.Errorf("ValidateTicketTypes()[%q] = %q, want %q", k, errs[k], msg)
		}
	}

	if errs := ValidateTicketTypes(nil); errs["ticket_types"] == "" {
		t.Error("ValidateTicketTypes(nil) expected ticket_types error")
	}
}

func TestEventCreateRequest_Validate(t *testing.T) {
	req := validEventRequest()
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	req.PricingPlan = "monthly"
	err := req.Validate()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Validate() error = %v, want ErrInvalidInput", err)
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || verrs["pricing_plan"] == "" {
		t.Errorf("Validate() error = %v, want pricing_plan entry", err)
	}
}

func TestEventCreateRequest_ToEvent(t *testing.T) {
	req := validEventRequest()
	qty := 100
	req.TicketTypes = append(req.TicketTypes, TicketTypeCreateRequest{
		Name:              "VIP",
		Price:             5000000,
		QuantityAvailable: &qty,
		SalesEndDate:      "2024-03-14T23:59:59",
	})

	event, err := req.ToEvent("user-1", StatusPublished)
	if err != nil {
		t.Fatalf("ToEvent() error = %v", err)
	}

	if event.OrganizerID != "user-1" || !event.IsPublished() {
		t.Errorf("ToEvent() organizer/status = %q/%q", event.OrganizerID, event.Status)
	}
	if want := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC); !event.StartDate.Equal(want) {
		t.Errorf("ToEvent() start = %v, want %v", event.StartDate, want)
	}
	if event.Description != nil {
		t.Errorf("ToEvent() description = %v, want nil", *event.Description)
	}
	if len(event.TicketTypes) != 2 {
		t.Fatalf("ToEvent() ticket types = %d, want 2", len(event.TicketTypes))
	}
	vip := event.TicketTypes[1]
	if vip.Position != 1 || vip.IsUnlimited() || vip.SalesEndDate == nil {
		t.Errorf("ToEvent() VIP = %+v", vip)
	}
	if !event.TicketTypes[0].IsUnlimited() {
		t.Error("ToEvent() general admission should be unlimited")
	}
}

func TestEvent_DisplayLocation(t *testing.T) {
	venue := "Eko Atlantic"
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{name: "online", event: Event{IsOnline: true, Location: &venue}, want: "Online"},
		{name: "venue", event: Event{Location: &venue}, want: venue},
		{name: "unset", event: Event{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.DisplayLocation(); got != tt.want {
				t.Errorf("DisplayLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvent_TicketTypeAndOwnership(t *testing.T) {
	event := Event{
		OrganizerID: "org-1",
		TicketTypes: []*TicketType{{ID: "a"}, {ID: "b"}},
	}

	if event.TicketType("b") == nil || event.TicketType("c") != nil {
		t.Error("TicketType() lookup mismatch")
	}
	if !event.IsOwnedBy("org-1") || event.IsOwnedBy("") || event.IsOwnedBy("org-2") {
		t.Error("IsOwnedBy() mismatch")
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("Arts & Culture") {
		t.Error("IsValidCategory(Arts & Culture) = false")
	}
	if IsValidCategory("arts & culture") {
		t.Error("IsValidCategory is case sensitive")
	}
	if len(EventCategories) != 14 {
		t.Errorf("EventCategories has %d entries", len(EventCategories))
	}
}

func TestPricingPlans(t *testing.T) {
	plans := PricingPlans()
	if len(plans) != 2 {
		t.Fatalf("PricingPlans() = %d plans", len(plans))
	}
	if plans[0].ID != PlanFlatFee || *plans[0].MonthlyPrice != 2000000 {
		t.Errorf("flat fee plan = %+v", plans[0])
	}
	if plans[1].ID != PlanPerTicket || plans[1].Percentage != 2.5 || *plans[1].FixedFee != 5000 {
		t.Errorf("per ticket plan = %+v", plans[1])
	}
	if PricingPlan("monthly").IsValid() {
		t.Error("unknown plan reported valid")
	}
}
