// Package containers starts throwaway backends for integration tests.
// Each backend sits behind its own build tag so plain go test never needs Docker
package containers

import (
	"context"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
)

const (
	startTimeout = 3 * time.Minute
	waitDeadline = 2 * time.Minute
)

// start runs req and returns host:port for port, terminating on test cleanup
func start(t *testing.T, req tc.ContainerRequest, port string) (host, mapped string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err = c.Host(ctx)
	if err != nil {
		t.Fatalf("%s host: %v", req.Image, err)
	}
	p, err := c.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("%s mapped port: %v", req.Image, err)
	}
	return host, p.Port()
}
