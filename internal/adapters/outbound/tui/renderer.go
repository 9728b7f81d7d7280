package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/archtidy/archtidy/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

type styles struct {
	title  lipgloss.Style
	marker lipgloss.Style
	dim    lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
}

// newStyles binds the palette to w so color is dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(accent),
		marker: r.NewStyle().Foreground(warning).Italic(true),
		dim:    r.NewStyle().Foreground(dim),
		pass:   r.NewStyle().Foreground(success),
		fail:   r.NewStyle().Foreground(danger).Bold(true),
		warn:   r.NewStyle().Foreground(warning),
	}
}

// Reporter implements domain.Reporter for a terminal. Results go to out,
// probe failures to errOut.
type Reporter struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	o, e   styles
}

func NewReporter(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errOut: errOut, o: newStyles(out), e: newStyles(errOut)}
}

func (r *Reporter) Result(res domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, renderResult(res, r.o))
}

func (r *Reporter) CheckFailed(probe string, err error) {
	r.line(r.errOut, r.e.fail.Render("check failed:")+" "+probe+": "+cause(err))
}

func (r *Reporter) FixPlan(probe, description string) {
	if description == "" {
		description = "apply fix"
	}
	r.line(r.out, r.o.title.Render("→ "+probe)+" "+r.o.dim.Render(description))
}

func (r *Reporter) Fixed(probe string) {
	r.line(r.out, r.o.pass.Render("✓ fixed")+" "+probe)
}

func (r *Reporter) FixFailed(probe string, err error) {
	r.line(r.errOut, r.e.fail.Render("fix failed:")+" "+probe+": "+cause(err))
}

func (r *Reporter) Skipped(probe string) {
	r.line(r.out, r.o.dim.Render("skipped "+probe))
}

func (r *Reporter) Summary(s domain.Summary) {
	line := fmt.Sprintf("fixed %d, failed %d, skipped %d", s.Fixed, s.FixFailed, s.Skipped)
	style := r.o.pass
	if s.FixFailed > 0 || s.Aborted {
		style = r.o.warn
	}
	r.line(r.out, "\n"+style.Render(line))
}

func (r *Reporter) line(w io.Writer, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(w, s)
}

// renderResult formats one block: the title line, the body, a blank line.
// The body is written unstyled; multi-line styles would pad every line.
func renderResult(res domain.Result, st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render(res.Title + ":"))
	if res.FixAvailable {
		b.WriteString(" " + st.marker.Render("(fix available)"))
	}
	b.WriteString("\n")
	b.WriteString(res.Body())
	b.WriteString("\n\n")
	return b.String()
}

// cause drops the probe prefix a ProbeError would repeat.
func cause(err error) string {
	var pe *domain.ProbeError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
