package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	health "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const ServiceName = "threads"

func (v *App) servingStatus(service string) (health.HealthCheckResponse_ServingStatus, error) {
	switch service {
	case "", ServiceName:
	default:
		return health.HealthCheckResponse_SERVICE_UNKNOWN, status.Errorf(codes.NotFound, "unknown service %s", service)
	}
	if v.stack == nil || v.stack.Users == nil || v.stack.Feed == nil {
		return health.HealthCheckResponse_NOT_SERVING, nil
	}
	return health.HealthCheckResponse_SERVING, nil
}

func (v *App) Check(ctx context.Context, request *health.HealthCheckRequest) (*health.HealthCheckResponse, error) {
	current, err := v.servingStatus(request.GetService())
	if err != nil {
		return nil, err
	}
	return &health.HealthCheckResponse{Status: current}, nil
}

// Watch pushes the status whenever it changes until the client goes away.
func (v *App) Watch(request *health.HealthCheckRequest, server health.Health_WatchServer) error {
	last := health.HealthCheckResponse_UNKNOWN
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		current, err := v.servingStatus(request.GetService())
		if err != nil {
			return err
		}
		if current != last {
			if err := server.Send(&health.HealthCheckResponse{Status: current}); err != nil {
				return err
			}
			last = current
		}

		select {
		case <-server.Context().Done():
			return nil
		case <-ticker.C:
		}
	}
}
