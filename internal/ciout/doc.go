// Package ciout appends key=value result lines to the pipeline's output
// file, the mechanism downstream workflow steps read results from.
//
// Values that may span lines or contain arbitrary bytes (template content,
// the JSON override object) are base64 encoded before emission so the
// key=value framing stays intact. A status line is always emitted, even
// when no template was found, so later steps can branch without probing
// for absent keys.
package ciout
