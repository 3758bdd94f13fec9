// Package connectors provides access to the places documents come from.
// The filesystem connector is the only source: it expands user-supplied
// paths into an ordered file list and watches them for changes.
package connectors
