package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("runtime fields not set: %+v", info)
	}
}

func TestShortAbbreviatesCommit(t *testing.T) {
	oldCommit := GitCommit
	defer func() { GitCommit = oldCommit }()

	GitCommit = "0123456789abcdef"
	if got, want := Short(), "statusled "+Version+" (0123456)"; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}
