package domain

import "time"

// HealthCheck rows are written by the health monitor's database probe so
// the probe exercises a real insert, not just a ping.
type HealthCheck struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
}
