//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Friend       string
	RdtPath      string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		Username:     os.Getenv("REDDIT_USERNAME"),
		Password:     os.Getenv("REDDIT_PASSWORD"),
		Friend:       os.Getenv("REDDIT_TEST_FRIEND"),
		RdtPath:      getRdtPath(),
		Verbose:      os.Getenv("RDT_VERBOSE") == "true",
	}
}

// getRdtPath determines the path to the rdt binary
func getRdtPath() string {
	if path := os.Getenv("RDT_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../rdt",
		"./rdt",
		"../rdt",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "rdt"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ClientID == "" || config.Username == "" || config.Password == "" {
		t.Skip("REDDIT_CLIENT_ID, REDDIT_USERNAME and REDDIT_PASSWORD must be set, skipping integration test")
	}

	if _, err := exec.LookPath(config.RdtPath); err != nil {
		t.Skipf("rdt binary not found at %s, skipping integration test", config.RdtPath)
	}
}

// CommandRunner runs rdt against an isolated configuration file
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes an rdt command and returns output
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	args = append([]string{"--config", runner.configFile}, args...)

	// #nosec G204 -- test binary path comes from the test environment
	cmd := exec.Command(runner.config.RdtPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.RdtPath, strings.Join(args, " "))
	}

	err := cmd.Run()
	stdout := stdoutBuf.String()
	stderr := stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Login authenticates the runner's profile with the password grant
func (runner *CommandRunner) Login() error {
	_, stderr, err := runner.Run("login",
		"--client-id", runner.config.ClientID,
		"--client-secret", runner.config.ClientSecret,
		"--username", runner.config.Username,
		"--password", runner.config.Password)
	if err != nil {
		return fmt.Errorf("failed to login: %s", stderr)
	}

	return nil
}

// ConfigFileContents returns the saved configuration file
func (runner *CommandRunner) ConfigFileContents() string {
	runner.t.Helper()

	data, err := os.ReadFile(runner.configFile)
	require.NoError(runner.t, err)

	return string(data)
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}
