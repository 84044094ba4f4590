// Package watch provides file-watching capabilities for stripimports'
// live-rebuild workflow. It monitors the named input files for changes,
// debounces rapid events, and re-runs the filter pipeline automatically.
package watch
