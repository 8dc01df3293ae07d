//go:build e2e

package clinic_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/idx"
)

/*
 * Container setup and shared helpers for the clinic service end-to-end tests.
 */

const (
	testImageName = "clinic-service-test:latest"
	testPassword  = "correct-horse-battery"
)

// TestMain builds the Docker image once for the whole package and removes
// it afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Clinic Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Clinic Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/clinic/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// baseEnv relaxes the rate limits so multi-step tests do not trip them.
func baseEnv() map[string]string {
	return map[string]string{
		"ENV":                         "test",
		"LOG_LEVEL":                   "info",
		"LOG_FORMAT":                  "json",
		"CLINIC_JWT_SECRET":           strings.Repeat("e2e-secret-", 4),
		"CLINIC_BCRYPT_COST":          "4",
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
}

// setupClinicContainer starts the service and returns its base URL. Extra env
// entries override the defaults.
func setupClinicContainer(t *testing.T, extra map[string]string) string {
	t.Helper()
	ctx := context.Background()

	env := baseEnv()
	for k, v := range extra {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

func uniqueEmail(prefix string) string {
	return prefix + "+" + strings.ToLower(idx.New().String()) + "@clinic.test"
}

// registerSession registers a fresh therapist and returns their session.
func registerSession(t *testing.T, client *clinicsdk.Client, prefix string) *clinicsdk.Session {
	t.Helper()

	res, err := client.Register(t.Context(), clinicsdk.RegisterRequest{
		Email:    uniqueEmail(prefix),
		Password: testPassword,
	})
	require.NoError(t, err)
	return client.NewSession(res.Token)
}

// clinicSession registers a therapist and enrols them in a new clinic.
func clinicSession(t *testing.T, client *clinicsdk.Client, prefix string) *clinicsdk.Session {
	t.Helper()

	sess := registerSession(t, client, prefix)
	_, err := sess.CreateClinic(t.Context(), clinicsdk.CreateClinicRequest{Name: prefix + " clinic"})
	require.NoError(t, err)
	return sess
}
