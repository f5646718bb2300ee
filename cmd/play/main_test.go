package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunRejectsBadArguments(t *testing.T) {
	t.Setenv("GAME_SERVER_URL", "")
	t.Setenv("GUESS_DEBUG", "")

	var stderr bytes.Buffer
	if code := run([]string{"-server", "ftp://localhost"}, &stderr); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Invalid arguments") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRunHelpExitsCleanly(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"-h"}, &stderr); code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}
