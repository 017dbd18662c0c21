// Package health aggregates dependency checks for the health endpoint.
package health

import (
	"context"
	"time"
)

const checkTimeout = 2 * time.Second

// Status of a single dependency check.
type Status struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report is the aggregate health snapshot.
type Report struct {
	Status string            `json:"status"` // "ok" or "degraded"
	Checks map[string]Status `json:"checks"`
}

// Service runs dependency health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
}

// New creates a health service. Either dependency may be nil; nil checks
// are skipped.
func New(db DBPinger, embedding EmbeddingChecker) *Service {
	return &Service{db: db, embedding: embedding}
}

// Check pings every configured dependency and aggregates the outcome.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	report := Report{Status: "ok", Checks: make(map[string]Status)}

	if s.db != nil {
		report.Checks["chunk_store"] = toStatus(s.db.Ping(ctx))
	}
	if s.embedding != nil {
		report.Checks["embedding"] = toStatus(s.embedding.HealthCheck(ctx))
	}

	for _, c := range report.Checks {
		if !c.OK {
			report.Status = "degraded"
			break
		}
	}
	return report
}

func toStatus(err error) Status {
	if err != nil {
		return Status{OK: false, Error: err.Error()}
	}
	return Status{OK: true}
}
