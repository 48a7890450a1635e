package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPreflightPasses(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	requireContains(t, out, "PASS")
	requireContains(t, out, "Artifact directory")
}

func TestPreflightFailsOnMissingArtifactDir(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "does-not-exist")

	out, _, err := runCLI(t, []string{"preflight", "--artifact-dir", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, out, "FAIL")
}

func TestPreflightFailsOnUnreadableFallback(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are meaningless as root")
	}
	env := setupCLITestEnv(t)

	fallback := filepath.Join(env.baseDir, "default.properties")
	if err := os.WriteFile(fallback, []byte("mode=safe\n"), 0o000); err != nil {
		t.Fatalf("write fallback: %v", err)
	}
	content := "[paths]\nartifact_dir = \"" + env.artifactDir + "\"\n\n" +
		"[template]\nfallback_path = \"" + fallback + "\"\n\n" +
		"[ci]\noutput_file = \"" + env.outputPath + "\"\n"
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, out, "FAIL")
}
