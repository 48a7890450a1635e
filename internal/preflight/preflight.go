package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"shipway/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config and
// artifact directory. Checks are only run when the corresponding feature is
// configured.
func RunAll(ctx context.Context, cfg *config.Config, artifactDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if artifactDir != "" {
		results = append(results, CheckDirectoryAccess("Artifact directory", artifactDir))
	}
	if output := cfg.OutputFilePath(); output != "" {
		results = append(results, CheckOutputFile(output))
	}
	if cfg.Template.FallbackPath != "" {
		results = append(results, CheckFileReadable("Fallback template", cfg.Template.FallbackPath))
	}
	if cfg.Release.Enabled {
		results = append(results, CheckReleaseAPI(ctx, cfg.Release.BaseURL, cfg.Release.APIToken))
	}

	return results
}

// AllPassed reports whether every check in results succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckDirectoryAccess verifies that the directory exists and is readable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckFileReadable verifies that path names a readable regular file.
func CheckFileReadable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckOutputFile verifies the CI output file's parent directory is writable.
func CheckOutputFile(path string) Result {
	const name = "CI output file"

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: parent: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: parent is not a directory)", path)}
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: parent not writable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

// CheckReleaseAPI verifies the release API endpoint is reachable and the
// token is accepted. A single attempt with a short timeout.
func CheckReleaseAPI(ctx context.Context, baseURL, token string) Result {
	const name = "Release API"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(token) == "" {
		return Result{Name: name, Detail: "missing api token"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/ping", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%v)", err)}
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%v)", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api token)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%d)", resp.StatusCode)}
	}
}
