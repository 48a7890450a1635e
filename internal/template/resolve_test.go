package template

import (
	"os"
	"path/filepath"
	"testing"

	"shipway/internal/testsupport"
)

func resolve(t *testing.T, root string, searchDirs []string, fallback string) Result {
	t.Helper()
	result, err := NewResolver(nil, nil).Resolve(root, searchDirs, fallback)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return result
}

func TestResolveReady(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.properties"), "x=1\n")
	testsupport.WriteFile(t, filepath.Join(root, "b.txt"), "y=2\n")

	result := resolve(t, root, nil, "")
	if result.Status != StatusReady {
		t.Fatalf("status = %s, want ready", result.Status)
	}
	if result.Name != "a.properties" {
		t.Fatalf("name = %s", result.Name)
	}
	if got, _ := result.Overrides.Get("x"); got != "1" {
		t.Fatalf("x = %q", got)
	}
	if result.Overrides.Len() != 1 {
		t.Fatalf("overrides from multiple files must never merge: %v", result.Overrides.Keys())
	}
}

func TestResolveEmptyDowngrade(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.properties"), "## only comments\n\n")

	result := resolve(t, root, nil, "")
	if result.Status != StatusEmpty {
		t.Fatalf("status = %s, want empty", result.Status)
	}
	if result.Overrides.Len() != 0 {
		t.Fatalf("expected no overrides, got %v", result.Overrides.Keys())
	}
	if result.Path == "" || result.Content == "" {
		t.Fatal("empty status still carries the chosen file")
	}
}

func TestResolveFallbackUsedWhenNothingQualifies(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "readme.md"), "docs only")

	fallback := filepath.Join(t.TempDir(), "default.properties")
	testsupport.WriteFile(t, fallback, "k=v\n")

	result := resolve(t, root, nil, fallback)
	if result.Status != StatusFallback {
		t.Fatalf("status = %s, want fallback", result.Status)
	}
	if got, _ := result.Overrides.Get("k"); got != "v" {
		t.Fatalf("k = %q", got)
	}
}

func TestResolveFallbackKeepsStatusWhenEmpty(t *testing.T) {
	root := t.TempDir()

	fallback := filepath.Join(t.TempDir(), "default.properties")
	testsupport.WriteFile(t, fallback, "## nothing here\n")

	result := resolve(t, root, nil, fallback)
	if result.Status != StatusFallback {
		t.Fatalf("empty fallback must not downgrade: %s", result.Status)
	}
}

func TestResolveMissing(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "readme.md"), "docs only")

	result := resolve(t, root, nil, "")
	if result.Status != StatusMissing {
		t.Fatalf("status = %s, want missing", result.Status)
	}
	if result.Path != "" || result.Content != "" {
		t.Fatal("missing result must not carry content")
	}
	if result.Overrides == nil || result.Overrides.Len() != 0 {
		t.Fatal("missing result carries an empty override map")
	}
}

func TestResolveMissingWhenFallbackUnreadable(t *testing.T) {
	root := t.TempDir()

	result := resolve(t, root, nil, filepath.Join(t.TempDir(), "absent.properties"))
	if result.Status != StatusMissing {
		t.Fatalf("unreadable fallback reports missing, got %s", result.Status)
	}
}

func TestResolveUnreadableChosenRetriesFallback(t *testing.T) {
	root := t.TempDir()
	chosen := filepath.Join(root, "a.properties")
	testsupport.WriteFile(t, chosen, "x=1\n")

	fallback := filepath.Join(t.TempDir(), "default.properties")
	testsupport.WriteFile(t, fallback, "k=v\n")

	// The file becomes unreadable between selection and the content read.
	resolver := NewResolver(nil, nil)
	realRead := resolver.readFile
	resolver.readFile = func(path string) ([]byte, error) {
		if path == chosen {
			return nil, os.ErrPermission
		}
		return realRead(path)
	}

	result, err := resolver.Resolve(root, nil, fallback)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Status != StatusFallback {
		t.Fatalf("status = %s, want fallback", result.Status)
	}
	if got, _ := result.Overrides.Get("k"); got != "v" {
		t.Fatalf("k = %q", got)
	}
}

func TestResolveUnreadableChosenWithoutFallbackIsMissing(t *testing.T) {
	root := t.TempDir()
	chosen := filepath.Join(root, "a.properties")
	testsupport.WriteFile(t, chosen, "x=1\n")

	resolver := NewResolver(nil, nil)
	resolver.readFile = func(string) ([]byte, error) {
		return nil, os.ErrPermission
	}

	result, err := resolver.Resolve(root, nil, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Status != StatusMissing {
		t.Fatalf("status = %s, want missing", result.Status)
	}
}

func TestResolveSearchDirPriority(t *testing.T) {
	root := t.TempDir()
	// Both candidates rank identically; the one under the priority search
	// dir still competes with the root copy, and selection stays
	// deterministic across the union.
	testsupport.WriteFile(t, filepath.Join(root, "customization-template", "a.properties"), "from=template-dir\n")
	testsupport.WriteFile(t, filepath.Join(root, "b.properties"), "from=root\n")

	result := resolve(t, root, []string{"customization-template", "customization"}, "")
	if result.Status != StatusReady {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Name != "a.properties" {
		t.Fatalf("expected a.properties to win the tie, got %s", result.Name)
	}
}

func TestResolveInsideArchive(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteZip(t, filepath.Join(root, "artifact.zip"), map[string]string{
		"customization/app.properties": "## ---- cfg ----\n#key=val\nkey2=val2\n",
	})

	result := resolve(t, root, []string{"customization"}, "")
	if result.Status != StatusReady {
		t.Fatalf("status = %s", result.Status)
	}
	if got, _ := result.Overrides.Get("key"); got != "val" {
		t.Fatalf("key = %q", got)
	}
	if got, _ := result.Overrides.Get("key2"); got != "val2" {
		t.Fatalf("key2 = %q", got)
	}
}
