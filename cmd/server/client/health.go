package client

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var healthService string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the gRPC health endpoint and the HTTP liveness route",
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthService, "service", "", "service name to check (empty for overall)")
}

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	conn, err := grpc.NewClient(healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to health server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: healthService,
	})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "gRPC health: %s\n", resp.GetStatus())

	var body map[string]string
	if err := newAPIClient().do(ctx, "GET", "/healthz", nil, &body); err != nil {
		return fmt.Errorf("HTTP health check failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP health: %s\n", body["status"])
	return nil
}
