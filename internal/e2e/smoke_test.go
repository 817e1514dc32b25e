package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runChicken(t, binaryPath, home, "resources", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"hp"`)
	assert.Contains(t, stdout, "0x03ba8868")

	_, stderr, err = runChicken(t, binaryPath, home, "thresholds", "set", "hp", "620")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runChicken(t, binaryPath, home, "thresholds", "get", "hp")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "620\n", stdout)

	content, err := os.ReadFile(filepath.Join(home, ".poe2-chicken-bot", "poe2-chicken-bot.config"))
	require.NoError(t, err)
	assert.Equal(t, "620,500,10", string(content))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "chicken-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/chicken")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build chicken binary: %s", string(output))
	return binaryPath
}

func runChicken(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "USERPROFILE="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
