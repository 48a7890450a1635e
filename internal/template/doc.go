// Package template discovers and parses the configuration-override template
// bundled inside downloaded build artifacts.
//
// Discovery walks a prioritized set of directories under the artifact root
// breadth-first, transparently expanding nested zip bundles along the way.
// From the collected files exactly one candidate is selected by a
// deterministic ranking, its text is parsed into an ordered key=value
// override set, and the outcome is reported as one of four statuses:
//
//	ready    template found and it declares overrides
//	empty    template found but it declares no overrides
//	fallback no template among the artifacts; the caller-supplied default was used
//	missing  nothing found anywhere
//
// Downstream pipeline steps branch on the status, so a result is produced
// even when no template exists.
package template
