package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/cognicore/kbase/pkg/kbase/config"
)

type sprintf func(format string, a ...interface{}) string

// palette colours the parts of CLI output. Every function is plain Sprintf when colour is off.
type palette struct {
	query   sprintf
	binding sprintf
	none    sprintf
	outcome sprintf
}

func newPalette(mode string, out io.Writer) palette {
	enabled := false
	switch mode {
	case config.ColorAlways:
		enabled = true
	case config.ColorAuto:
		if f, ok := out.(*os.File); ok {
			fd := f.Fd()
			enabled = !color.NoColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
		}
	}

	mk := func(attrs ...color.Attribute) sprintf {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}

	return palette{
		query:   mk(color.Bold),
		binding: mk(color.FgGreen),
		none:    mk(color.FgYellow),
		outcome: mk(color.FgCyan),
	}
}
