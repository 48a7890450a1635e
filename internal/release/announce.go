package release

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RunMetadata captures the identity of the pipeline run building a release.
// Values come from the CI environment; shipway-specific variables win over
// the generic ones the runner provides.
type RunMetadata struct {
	Project string
	Version string
	RunID   string
	Commit  string
	Actor   string
	RunURL  string
}

// MetadataFromEnv assembles run metadata from environment variables via the
// provided lookup (usually os.LookupEnv).
func MetadataFromEnv(lookup func(string) (string, bool)) RunMetadata {
	get := func(keys ...string) string {
		for _, key := range keys {
			if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
		return ""
	}

	meta := RunMetadata{
		Project: get("SHIPWAY_PROJECT", "GITHUB_REPOSITORY"),
		Version: get("SHIPWAY_VERSION", "GITHUB_REF_NAME"),
		RunID:   get("SHIPWAY_RUN_ID", "GITHUB_RUN_ID"),
		Commit:  get("SHIPWAY_COMMIT", "GITHUB_SHA"),
		Actor:   get("SHIPWAY_ACTOR", "GITHUB_ACTOR"),
	}

	if server := get("GITHUB_SERVER_URL"); server != "" && meta.Project != "" && meta.RunID != "" {
		meta.RunURL = fmt.Sprintf("%s/%s/actions/runs/%s", strings.TrimRight(server, "/"), meta.Project, meta.RunID)
	}
	return meta
}

// Announcement is the release resource content submitted to the API.
type Announcement struct {
	Tag  string
	Name string
	Body string
}

// BuildAnnouncement derives the release tag, display name, and body from run
// metadata. Project and version are required; everything else enriches the
// body when present.
func BuildAnnouncement(meta RunMetadata) (Announcement, error) {
	project := strings.TrimSpace(meta.Project)
	version := strings.TrimSpace(meta.Version)
	if project == "" {
		return Announcement{}, errors.New("run metadata is missing the project name")
	}
	if version == "" {
		return Announcement{}, errors.New("run metadata is missing the version")
	}

	display := displayName(project)

	var body strings.Builder
	fmt.Fprintf(&body, "Automated release of %s %s.\n", display, version)
	if meta.Commit != "" {
		fmt.Fprintf(&body, "\n- Commit: %s", meta.Commit)
	}
	if meta.Actor != "" {
		fmt.Fprintf(&body, "\n- Triggered by: %s", meta.Actor)
	}
	if meta.RunURL != "" {
		fmt.Fprintf(&body, "\n- Pipeline run: %s", meta.RunURL)
	}

	return Announcement{
		Tag:  version,
		Name: fmt.Sprintf("%s %s", display, version),
		Body: body.String(),
	}, nil
}

// displayName turns an owner/repo slug or kebab-case project name into a
// human-readable title.
func displayName(project string) string {
	name := project
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = project
	}
	return cases.Title(language.Und).String(name)
}
