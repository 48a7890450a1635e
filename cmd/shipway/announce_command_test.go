package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAnnounceDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("SHIPWAY_PROJECT", "acme/shipping-service")
	t.Setenv("SHIPWAY_VERSION", "v2.1.0")
	t.Setenv("SHIPWAY_COMMIT", "abc1234")

	stdout, _, err := runCLI(t, []string{"announce", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("announce --dry-run: %v", err)
	}

	var view struct {
		Tag    string `json:"tag"`
		Name   string `json:"name"`
		Body   string `json:"body"`
		DryRun bool   `json:"dry_run"`
	}
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode stdout: %v", err)
	}
	if view.Tag != "v2.1.0" {
		t.Fatalf("unexpected tag %q", view.Tag)
	}
	if view.Name != "Shipping Service v2.1.0" {
		t.Fatalf("unexpected name %q", view.Name)
	}
	if !view.DryRun {
		t.Fatal("expected dry_run flag in output")
	}
	requireContains(t, view.Body, "abc1234")
}

func TestAnnounceRequiresVersion(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("SHIPWAY_PROJECT", "acme/shipping-service")
	t.Setenv("SHIPWAY_VERSION", "")
	t.Setenv("GITHUB_REF_NAME", "")

	_, _, err := runCLI(t, []string{"announce", "--dry-run"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestAnnounceRequiresReleaseConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("SHIPWAY_PROJECT", "acme/shipping-service")
	t.Setenv("SHIPWAY_VERSION", "v1.0.0")

	_, _, err := runCLI(t, []string{"announce"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled-release error, got %v", err)
	}
}
