//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIURL     string
	APIKey     string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIURL:     os.Getenv("CONTENTAPI_TEST_API_URL"),
		APIKey:     os.Getenv("CONTENTAPI_TEST_API_KEY"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("CONTENTAPI_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the contentapi binary
func getBinaryPath() string {
	if path := os.Getenv("CONTENTAPI_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../contentapi",
		"./contentapi",
		"../contentapi",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "contentapi" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIURL == "" {
		t.Skip("CONTENTAPI_TEST_API_URL not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("contentapi binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs the contentapi binary with an isolated config file.
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

// Run executes a contentapi command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a contentapi command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile, "--api", runner.config.APIURL}, args...)

	// #nosec G204 -- the binary path comes from the test environment
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "CONTENTAPI_API_KEY="+runner.config.APIKey)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput decodes command output as JSON into a map.
func AssertJSONOutput(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded), "output is not JSON: %s", output)

	return decoded
}

// AssertYAMLOutput decodes command output as YAML into a map.
func AssertYAMLOutput(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(output), &decoded), "output is not YAML: %s", output)

	return decoded
}
