package models

// PricingPlan is the fee model an organizer picks for an event
type PricingPlan string

const (
	// PlanFlatFee charges the organizer a monthly subscription and no per-ticket fee
	PlanFlatFee PricingPlan = "flat_fee"
	// PlanPerTicket adds a percentage plus a fixed surcharge to every ticket
	PlanPerTicket PricingPlan = "per_ticket"
)

const (
	// PerTicketFeeBasisPoints is the percentage part of the per-ticket fee (2.5%)
	PerTicketFeeBasisPoints = 250
	// PerTicketFixedFee is the fixed part of the per-ticket fee (NGN 50)
	PerTicketFixedFee Money = 50 * Naira
	// FlatFeeMonthlyPrice is the monthly subscription for the flat fee plan (NGN 20,000)
	FlatFeeMonthlyPrice Money = 20000 * Naira
	// DefaultCurrency is the platform currency
	DefaultCurrency = "NGN"
)

// IsValid reports whether the plan is one of the supported plans
func (p PricingPlan) IsValid() bool {
	return p == PlanFlatFee || p == PlanPerTicket
}

// PricingPlanInfo describes a pricing plan for display
type PricingPlanInfo struct {
	ID           PricingPlan `json:"id"`
	Name         string      `json:"name"`
	Currency     string      `json:"currency"`
	Description  string      `json:"description"`
	MonthlyPrice *Money      `json:"monthly_price,omitempty"`
	Percentage   float64     `json:"percentage,omitempty"`
	FixedFee     *Money      `json:"fixed_fee,omitempty"`
	Benefits     []string    `json:"benefits"`
}

// PricingPlans returns the descriptors of every supported plan
func PricingPlans() []PricingPlanInfo {
	monthly := FlatFeeMonthlyPrice
	fixed := PerTicketFixedFee

	return []PricingPlanInfo{
		{
			ID:           PlanFlatFee,
			Name:         "Flat Fee",
			Currency:     DefaultCurrency,
			Description:  "NGN20,000/month for unlimited events & tickets",
			MonthlyPrice: &monthly,
			Benefits:     []string{"No per-ticket fees", "Unlimited events", "Best for regular events"},
		},
		{
			ID:          PlanPerTicket,
			Name:        "Per-Ticket Fee",
			Currency:    DefaultCurrency,
			Description: "2.5% + NGN50 per ticket",
			Percentage:  float64(PerTicketFeeBasisPoints) / 100,
			FixedFee:    &fixed,
			Benefits:    []string{"Only pay when you sell", "Perfect for trying us out", "No monthly commitment"},
		},
	}
}
