// Package ui renders reunion status output to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/reunion/internal/ansi"
	"github.com/papapumpkin/reunion/internal/bench"
	"github.com/papapumpkin/reunion/internal/graph"
	"github.com/papapumpkin/reunion/internal/script"
)

// Printer writes colored status lines. Create one with New or NewWriter.
type Printer struct {
	w       io.Writer
	verbose bool
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return NewWriter(os.Stderr)
}

// NewWriter returns a Printer writing to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// SetVerbose enables Debug output.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

// Error prints msg with an error prefix.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

// Info prints a dimmed status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.w, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

// Debug prints msg only in verbose mode.
func (p *Printer) Debug(msg string) {
	if p.verbose {
		fmt.Fprintf(p.w, ansi.Dim+"· %s"+ansi.Reset+"\n", msg)
	}
}

// --- Bench output ---

// BenchStart prints the run header.
func (p *Printer) BenchStart(levels, trials int) {
	fmt.Fprintf(p.w, ansi.Bold+ansi.Magenta+"── big merge: %s elements, %s trials/level ──"+ansi.Reset+"\n",
		humanize.Comma(int64(1)<<levels), humanize.Comma(int64(trials)))
}

// BenchLevel prints one completed merge level.
func (p *Printer) BenchLevel(s bench.LevelStats) {
	fmt.Fprintf(p.w, ansi.Cyan+"◆ level %2d"+ansi.Reset+" %s unions, %s finds "+ansi.Dim+"(%s)"+ansi.Reset+"\n",
		s.Level, humanize.Comma(int64(s.Unions)), humanize.Comma(int64(s.Finds)), s.Elapsed)
}

// BenchSummary prints operation totals and the amortized time per operation.
func (p *Printer) BenchSummary(r bench.Result) {
	fmt.Fprintf(p.w, ansi.Green+ansi.Bold+"✓ done"+ansi.Reset+" #Find: %s, #Union: %s, #Total: %s, Time: %s, Time per operation: %s\n",
		humanize.Comma(int64(r.Finds)), humanize.Comma(int64(r.Unions)), humanize.Comma(int64(r.Ops())), r.Elapsed, r.PerOp())
}

// --- Script output ---

// ScriptResult prints the subsets of an applied script and, when the script
// carried expectations, whether they held.
func (p *Printer) ScriptResult(name string, s *script.Script, out *script.Outcome) {
	if name == "" {
		name = "script"
	}
	fmt.Fprintf(p.w, ansi.Bold+"%s"+ansi.Reset+ansi.Dim+" size=%d, %d non-trivial group(s)"+ansi.Reset+"\n",
		name, out.Engine.Size(), len(out.Subsets))
	for _, g := range out.Subsets {
		fmt.Fprintf(p.w, "  {%s}\n", strings.Join(g, " "))
	}
	if len(s.Expect) == 0 {
		return
	}
	if out.Err() == nil {
		fmt.Fprintln(p.w, ansi.Green+ansi.Bold+"✓ expectations met"+ansi.Reset)
		return
	}
	for _, g := range out.Missing {
		fmt.Fprintf(p.w, ansi.Red+"✗ missing"+ansi.Reset+"    {%s}\n", strings.Join(g, " "))
	}
	for _, g := range out.Unexpected {
		fmt.Fprintf(p.w, ansi.Yellow+"⚠ unexpected"+ansi.Reset+" {%s}\n", strings.Join(g, " "))
	}
}

// Forest prints the edges of a spanning forest and its total weight.
func (p *Printer) Forest(f graph.Forest) {
	for _, e := range f.Edges {
		fmt.Fprintf(p.w, "  %s — %s "+ansi.Dim+"(%g)"+ansi.Reset+"\n", e.From, e.To, e.Weight)
	}
	fmt.Fprintf(p.w, ansi.Green+ansi.Bold+"✓ forest"+ansi.Reset+" %d edge(s), %d tree(s), weight %g\n",
		len(f.Edges), f.Trees, f.Weight)
}

// Watching announces that a file is being watched for changes.
func (p *Printer) Watching(path string) {
	fmt.Fprintf(p.w, ansi.Cyan+"◆ watching"+ansi.Reset+" %s "+ansi.Dim+"(ctrl-c to stop)"+ansi.Reset+"\n", path)
}
