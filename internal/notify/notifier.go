package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
)

// Notifier pushes "new job" notifications to a driver's LINE account
// through a relay webhook. Fire-and-forget: the caller never waits and
// failures are logged, not surfaced.
type Notifier struct {
	WebhookURL string
	Client     *http.Client
	Log        *zap.Logger
}

func New(webhookURL string, log *zap.Logger) *Notifier {
	return &Notifier{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
		Log:        log,
	}
}

// JobNotification is the webhook payload: the order identifier, the
// driver identifiers, and a JSON snapshot of the order details.
type JobNotification struct {
	Event    string       `json:"event"`
	OrderID  string       `json:"orderId"`
	DriverID string       `json:"driverId"`
	LineID   string       `json:"lineId"`
	Order    models.Order `json:"order"`
}

// NotifyNewJob posts the notification in the background. A blank webhook
// URL disables notifications entirely.
func (n *Notifier) NotifyNewJob(order models.Order) {
	if n.WebhookURL == "" || order.DriverID == "" {
		return
	}
	payload, err := json.Marshal(JobNotification{
		Event:    "new_job",
		OrderID:  order.ID,
		DriverID: order.DriverID,
		LineID:   order.DriverLineID,
		Order:    order,
	})
	if err != nil {
		n.Log.Warn("driver notification encode failed",
			zap.String("orderId", order.ID), zap.Error(err))
		return
	}
	go func() {
		resp, err := n.Client.Post(n.WebhookURL, "application/json", bytes.NewReader(payload))
		if err != nil {
			n.Log.Warn("driver notification failed",
				zap.String("orderId", order.ID),
				zap.String("driverId", order.DriverID),
				zap.Error(err))
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusMultipleChoices {
			n.Log.Warn("driver notification rejected",
				zap.String("orderId", order.ID),
				zap.Int("status", resp.StatusCode))
		}
	}()
}
