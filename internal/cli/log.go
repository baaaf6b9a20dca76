// Package cli implements the guestree command-line interface.
//
// This package provides commands for maintaining the guest graph (people,
// relationships, tree root), rendering it as a generational tree, editing it
// as a table, exporting the guest list and serving a read-only HTTP view.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - person: Add, list and delete people
//   - rel: Add, list and remove relationships
//   - root: Choose the tree root
//   - render: Generate DOT, SVG or PNG visualizations
//   - edit: Interactive table editor
//   - export/import: Snapshot and guest-list files
//   - serve: Read-only HTTP viewer
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"time"

	"github.com/charmbracelet/log"
)

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Rendered tree (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
