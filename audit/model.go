// audit/model.go
package audit

import (
	"time"
)

const ActionSubscriptionExpired = "subscription.expired"

// ExpirationLog is one audit record of an applied expiration.
type ExpirationLog struct {
	Timestamp     time.Time `json:"timestamp"`
	FBID          string    `json:"fbid"`
	Action        string    `json:"action"`
	Sentinel      string    `json:"sentinel"`
	RecordUpdated bool      `json:"record_updated"`
	RecordError   string    `json:"record_error,omitempty"`
}
