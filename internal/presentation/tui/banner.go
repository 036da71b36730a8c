package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the atelier ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`        _       _ _`, "#818cf8"},
		{`   __ _| |_ ___| (_) ___ _ __`, "#a78bfa"},
		{`  / _' | __/ _ \ | |/ _ \ '__|`, "#c084fc"},
		{` | (_| | ||  __/ | |  __/ |`, "#e879f9"},
		{`  \__,_|\__\___|_|_|\___|_|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
