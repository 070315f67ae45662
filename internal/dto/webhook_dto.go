package dto

// PaystackWebhook is the envelope Paystack posts to our webhook URL.
// Only the fields the subscription service reads are declared.
type PaystackWebhook struct {
	Event string        `json:"event"`
	Data  PaystackEvent `json:"data"`
}

type PaystackEvent struct {
	Reference  string           `json:"reference"`
	AmountKobo int64            `json:"amount"`
	Status     string           `json:"status"`
	PaidAt     string           `json:"paid_at"`
	Customer   PaystackCustomer `json:"customer"`
	Plan       PaystackPlan     `json:"plan"`
}

type PaystackCustomer struct {
	Email string `json:"email"`
}

type PaystackPlan struct {
	PlanCode string `json:"plan_code"`
	Interval string `json:"interval"`
}
