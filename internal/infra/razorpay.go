package infra

import (
	"martylabs/internal/config"

	razorpay "github.com/razorpay/razorpay-go"
)

// CheckoutClient is the slice of the payment SDK the checkout flow uses.
type CheckoutClient interface {
	CreateSubscription(data map[string]interface{}) (map[string]interface{}, error)
}

type razorpayClient struct {
	client *razorpay.Client
}

func NewRazorpayClient(cfg *config.Config) CheckoutClient {
	return &razorpayClient{
		client: razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
	}
}

func (r *razorpayClient) CreateSubscription(data map[string]interface{}) (map[string]interface{}, error) {
	return r.client.Subscription.Create(data, nil)
}
