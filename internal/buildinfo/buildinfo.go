// Package buildinfo exposes version metadata injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/polyglot/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/dmitrijs2005/polyglot/internal/buildinfo.Date=2026-10-16 \
//	  -X github.com/dmitrijs2005/polyglot/internal/buildinfo.Commit=abc123"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// String returns a one-line summary of the build.
func String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", Version, Date, Commit)
}

// PrintBuildData writes the build metadata to w, one field per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
