// Package preflight verifies the job environment before any work starts:
// artifact directory access, CI output file writability, and release API
// reachability when that integration is enabled. Failing fast with a named
// check beats a confusing mid-run error from deep inside the engine.
package preflight
