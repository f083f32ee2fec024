package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the kinetree ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _    _            _                ", "#34d399"},
		{"| | _(_)_ __   ___| |_ _ __ ___  ___", "#2dd4bf"},
		{"| |/ / | '_ \\ / _ \\ __| '__/ _ \\/ _ \\", "#22d3ee"},
		{"|   <| | | | |  __/ |_| | |  __/  __/", "#38bdf8"},
		{"|_|\\_\\_|_| |_|\\___|\\__|_|  \\___|\\___|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
