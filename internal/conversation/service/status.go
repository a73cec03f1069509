package service

import (
	"context"
	"time"
)

// ComponentStatus is the probed state of one collaborator.
type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ServiceStatus aggregates the collaborator probes for the status endpoint.
type ServiceStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components"`
	CheckedAt  time.Time                  `json:"checked_at"`
}

// ServiceStatus probes the session store, the messaging bridge and the
// text-generation backend. Each probe runs under its own short deadline so a
// hung collaborator cannot stall the endpoint.
func (s *Service) ServiceStatus(ctx context.Context) *ServiceStatus {
	components := map[string]ComponentStatus{
		"session_store": s.probe(ctx, func(ctx context.Context) error {
			return s.sessions.Ping(ctx)
		}),
		"whatsapp": s.probe(ctx, func(ctx context.Context) error {
			return s.sender.Health(ctx)
		}),
	}

	if s.textGen != nil {
		components["text_generation"] = s.probe(ctx, func(ctx context.Context) error {
			_, err := s.textGen.Generate(ctx, "ping", "health-check")
			return err
		})
	} else {
		components["text_generation"] = ComponentStatus{Status: "disabled"}
	}

	overall := "ok"
	for _, c := range components {
		if c.Status == "error" {
			overall = "degraded"
			break
		}
	}

	return &ServiceStatus{
		Status:     overall,
		Components: components,
		CheckedAt:  s.now(),
	}
}

func (s *Service) probe(ctx context.Context, check func(context.Context) error) ComponentStatus {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := check(probeCtx); err != nil {
		return ComponentStatus{Status: "error", Error: err.Error()}
	}
	return ComponentStatus{Status: "ok"}
}
