package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes errors the way a compiler does: location, severity, message
// and hint.
type Printer struct {
	w    io.Writer
	loc  *color.Color
	sev  *color.Color
	hint *color.Color
}

// NewPrinter creates a Printer writing to w. Colors follow color.NoColor
// unless disabled explicitly.
func NewPrinter(w io.Writer, enableColor bool) *Printer {
	p := &Printer{
		w:    w,
		loc:  color.New(color.Bold),
		sev:  color.New(color.FgRed, color.Bold),
		hint: color.New(color.FgGreen),
	}
	if !enableColor {
		p.loc.DisableColor()
		p.sev.DisableColor()
		p.hint.DisableColor()
	}
	return p
}

// Print writes every error contained in err and returns how many were
// written.
func (p *Printer) Print(err error) int {
	n := 0
	for _, e := range List(err) {
		p.printOne(e)
		n++
	}
	return n
}

func (p *Printer) printOne(err error) {
	var de *Error
	if !errors.As(err, &de) {
		fmt.Fprintf(p.w, "%s %s\n", p.sev.Sprint("error:"), err)
		return
	}
	if loc := de.Loc.String(); loc != "" {
		fmt.Fprintf(p.w, "%s ", p.loc.Sprint(loc+":"))
	}
	fmt.Fprintf(p.w, "%s %s\n", p.sev.Sprint("error:"), de.Msg)
	if hint := de.Hint(); hint != "" {
		fmt.Fprintf(p.w, "  %s %s\n", p.hint.Sprint("help:"), hint)
	}
}
