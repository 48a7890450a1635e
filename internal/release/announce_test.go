package release

import (
	"strings"
	"testing"
)

func envLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestMetadataFromEnvPrefersShipwayVariables(t *testing.T) {
	meta := MetadataFromEnv(envLookup(map[string]string{
		"SHIPWAY_PROJECT":   "acme/widget-factory",
		"GITHUB_REPOSITORY": "acme/other",
		"GITHUB_REF_NAME":   "v1.2.3",
		"GITHUB_RUN_ID":     "99",
		"GITHUB_SERVER_URL": "https://github.example.com/",
	}))

	if meta.Project != "acme/widget-factory" {
		t.Fatalf("project = %q", meta.Project)
	}
	if meta.Version != "v1.2.3" {
		t.Fatalf("version = %q", meta.Version)
	}
	if meta.RunURL != "https://github.example.com/acme/widget-factory/actions/runs/99" {
		t.Fatalf("run url = %q", meta.RunURL)
	}
}

func TestMetadataFromEnvIgnoresBlankValues(t *testing.T) {
	meta := MetadataFromEnv(envLookup(map[string]string{
		"SHIPWAY_VERSION": "   ",
		"GITHUB_REF_NAME": "v2.0.0",
	}))
	if meta.Version != "v2.0.0" {
		t.Fatalf("blank value should fall through, got %q", meta.Version)
	}
}

func TestBuildAnnouncement(t *testing.T) {
	ann, err := BuildAnnouncement(RunMetadata{
		Project: "acme/widget-factory",
		Version: "v1.2.3",
		Commit:  "abc123",
		Actor:   "release-bot",
		RunURL:  "https://ci.example.com/runs/99",
	})
	if err != nil {
		t.Fatalf("BuildAnnouncement: %v", err)
	}

	if ann.Tag != "v1.2.3" {
		t.Fatalf("tag = %q", ann.Tag)
	}
	if ann.Name != "Widget Factory v1.2.3" {
		t.Fatalf("name = %q", ann.Name)
	}
	for _, want := range []string{"Widget Factory", "abc123", "release-bot", "https://ci.example.com/runs/99"} {
		if !strings.Contains(ann.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, ann.Body)
		}
	}
}

func TestBuildAnnouncementOmitsAbsentFields(t *testing.T) {
	ann, err := BuildAnnouncement(RunMetadata{Project: "widget", Version: "v1"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(ann.Body, "Commit") || strings.Contains(ann.Body, "Triggered by") {
		t.Fatalf("body should omit absent fields:\n%s", ann.Body)
	}
}

func TestBuildAnnouncementRequiresProjectAndVersion(t *testing.T) {
	if _, err := BuildAnnouncement(RunMetadata{Version: "v1"}); err == nil {
		t.Fatal("expected error without project")
	}
	if _, err := BuildAnnouncement(RunMetadata{Project: "p"}); err == nil {
		t.Fatal("expected error without version")
	}
}
