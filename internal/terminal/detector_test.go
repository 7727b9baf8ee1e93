package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, name := range ciEnvVars {
		t.Setenv(name, "")
	}
}

func TestForceInteractiveWins(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("CI", "true")

	d := NewDetector(DetectorOptions{ForceInteractive: true})
	assert.True(t, d.IsInteractive())
}

func TestForceNonInteractiveWins(t *testing.T) {
	clearCIEnv(t)

	d := NewDetector(DetectorOptions{ForceNonInteractive: true})
	assert.False(t, d.IsInteractive())
}

func TestCIEnvironmentDetection(t *testing.T) {
	clearCIEnv(t)
	d := NewDetector(DetectorOptions{})
	assert.False(t, d.IsCIEnvironment())

	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, d.IsCIEnvironment())
}

func TestCIEnvironmentIsNotInteractive(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("CI", "1")

	d := NewDetector(DetectorOptions{})
	assert.False(t, d.IsInteractive())
}

func TestNonTerminalStdoutIsNotInteractive(t *testing.T) {
	clearCIEnv(t)

	// Test runners do not attach stdout to a terminal.
	d := NewDetector(DetectorOptions{})
	assert.False(t, d.IsTerminal())
	assert.False(t, d.IsInteractive())
}
