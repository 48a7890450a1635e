// Package archive expands zip bundles found inside downloaded artifact trees.
//
// Detection inspects the file signature rather than the extension, so
// renamed bundles are still recognized and text files named *.zip are not.
// Each archive is extracted exactly once into a sibling directory derived
// from the archive name; re-running over an already expanded tree is a
// no-op. A file lock serializes extraction so parallel CI jobs sharing an
// artifact volume never interleave writes into the same destination.
package archive
