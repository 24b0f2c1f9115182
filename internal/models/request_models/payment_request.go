package request_models

type CreateCheckoutRequest struct {
	PlanCode     string `json:"plan_code" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required,oneof=monthly annual"`
}

// ProviderEvent is the payment provider's webhook envelope. Entity fields
// follow Razorpay's subscription/payment event schema; period bounds arrive
// in seconds since epoch.
type ProviderEvent struct {
	ID        string `json:"-"` // from the x-razorpay-event-id header
	Event     string `json:"event"`
	CreatedAt int64  `json:"created_at"`
	Payload   struct {
		Subscription struct {
			Entity SubscriptionEntity `json:"entity"`
		} `json:"subscription"`
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type SubscriptionEntity struct {
	ID           string            `json:"id"`
	PlanID       string            `json:"plan_id"`
	CustomerID   string            `json:"customer_id"`
	Status       string            `json:"status"`
	CurrentStart int64             `json:"current_start"` // seconds
	CurrentEnd   int64             `json:"current_end"`   // seconds
	PaidCount    int               `json:"paid_count"`
	Notes        map[string]string `json:"notes"`
}

type PaymentEntity struct {
	ID               string `json:"id"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	Description      string `json:"description"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}
