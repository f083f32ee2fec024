// Package file implements the kinetree ports on the local filesystem: declarative template
// files, static trial files, inertia tables and a JSON model store.
//
// Documents are YAML or JSON, chosen by file extension (.json is JSON, anything else YAML).
package file
