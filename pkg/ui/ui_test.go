package ui

import "testing"

func TestCI_DetectsEnvVar(t *testing.T) {
	t.Setenv("CI", "true")
	if !CI() {
		t.Error("CI() = false with CI=true set")
	}
}

func TestGUISession_FalseOnCI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("DISPLAY", ":0")
	if GUISession() {
		t.Error("GUISession() = true under CI")
	}
}

func TestIcon_FallsBackWhenNotInteractive(t *testing.T) {
	// Test binaries run with stderr attached to a pipe under go test, so
	// Interactive() is false and the ascii form must come back.
	if Interactive() {
		t.Skip("test running on a real terminal")
	}
	if got := Icon("✓", "[ok]"); got != "[ok]" {
		t.Errorf("Icon = %q, want ascii fallback", got)
	}
}
