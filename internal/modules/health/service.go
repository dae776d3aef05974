package health

import (
	"context"
	"fmt"
	"os"
	"time"
)

const (
	StatusHealthy  = "healthy"
	StatusWarning  = "warning"
	StatusCritical = "critical"

	stalePendingAge = 24 * time.Hour
)

type CheckResult struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
	Latency string `json:"latency"`
}

type Report struct {
	Status    string        `json:"status"`
	CheckedAt time.Time     `json:"checked_at"`
	Checks    []CheckResult `json:"checks"`
	Errors    []string      `json:"errors,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
}

type ProbeRepository interface {
	WriteProbe(ctx context.Context, status string) error
	CheckBookingsReadable(ctx context.Context) error
	CheckPhotosReadable(ctx context.Context) error
}

type BookingCounter interface {
	CountStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type AdminCounter interface {
	CountAdmins(ctx context.Context) (int64, error)
}

// Service runs the platform health checks: a write probe, read probes on
// the two tables the public site depends on, and an admin-account probe
// that verifies role data is intact.
type Service struct {
	probes    ProbeRepository
	bookings  BookingCounter
	users     AdminCounter
	uploadDir string
}

func NewService(probes ProbeRepository, bookings BookingCounter, users AdminCounter, uploadDir string) *Service {
	return &Service{probes: probes, bookings: bookings, users: users, uploadDir: uploadDir}
}

func (s *Service) Run(ctx context.Context) *Report {
	report := &Report{CheckedAt: time.Now().UTC()}

	s.check(ctx, report, "database", func(ctx context.Context) error {
		return s.probes.WriteProbe(ctx, "ok")
	})
	s.check(ctx, report, "bookings", s.probes.CheckBookingsReadable)
	s.check(ctx, report, "vehicle_photos", s.probes.CheckPhotosReadable)
	s.check(ctx, report, "roles", func(ctx context.Context) error {
		n, err := s.users.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no admin accounts exist")
		}
		return nil
	})

	// Stale pending bookings are a warning, not an outage.
	if stale, err := s.bookings.CountStalePending(ctx, time.Now().Add(-stalePendingAge)); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("stale pending count failed: %v", err))
	} else if stale > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d pending bookings older than 24h", stale))
	}

	if s.uploadDir != "" {
		if _, err := os.Stat(s.uploadDir); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("uploads dir: %v", err))
		}
	}

	switch {
	case len(report.Errors) > 0:
		report.Status = StatusCritical
	case len(report.Warnings) > 0:
		report.Status = StatusWarning
	default:
		report.Status = StatusHealthy
	}
	return report
}

func (s *Service) check(ctx context.Context, report *Report, name string, fn func(context.Context) error) {
	start := time.Now()
	err := fn(ctx)
	result := CheckResult{
		Name:    name,
		OK:      err == nil,
		Latency: time.Since(start).Round(time.Millisecond).String(),
	}
	if err != nil {
		result.Detail = err.Error()
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", name, err))
	}
	report.Checks = append(report.Checks, result)
}
