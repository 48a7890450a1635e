// Package release talks to the release-hosting API and builds the release
// announcement from environment-provided run metadata.
//
// Calls are sequential with no retry handling: a failed call aborts the
// pipeline run, which is the desired behaviour for a deployment helper.
// The HTTP client is injected behind a small interface so tests can stub
// the API.
package release
