//go:build integration_ch

package containers

import (
	"fmt"
	"testing"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ClickHouse starts a single node server and returns a native protocol DSN
func ClickHouse(t *testing.T) string {
	t.Helper()
	host, port := start(t, tc.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.8-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		Env: map[string]string{
			"CLICKHOUSE_USER":     "muzzle",
			"CLICKHOUSE_PASSWORD": "muzzle",
			"CLICKHOUSE_DB":       "muzzle",
		},
		WaitingFor: wait.ForHTTP("/ping").WithPort("8123/tcp").WithStartupTimeout(waitDeadline),
	}, "9000/tcp")
	return fmt.Sprintf("clickhouse://muzzle:muzzle@%s:%s/muzzle", host, port)
}
