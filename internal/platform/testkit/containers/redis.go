//go:build integration_redis

package containers

import (
	"fmt"
	"testing"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Redis starts redis:7-alpine and returns a redis:// URL
func Redis(t *testing.T) string {
	t.Helper()
	host, port := start(t, tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(waitDeadline),
	}, "6379/tcp")
	return fmt.Sprintf("redis://%s:%s/0", host, port)
}
