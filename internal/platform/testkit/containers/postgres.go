//go:build integration_pg

package containers

import (
	"fmt"
	"testing"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Postgres starts postgres:16-alpine and returns its DSN
func Postgres(t *testing.T) string {
	t.Helper()
	host, port := start(t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "muzzle",
			"POSTGRES_PASSWORD": "muzzle",
			"POSTGRES_DB":       "muzzle",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(waitDeadline),
	}, "5432/tcp")
	return fmt.Sprintf("postgres://muzzle:muzzle@%s:%s/muzzle?sslmode=disable", host, port)
}
