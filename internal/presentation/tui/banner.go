package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  _____ _   _ ___ ____ __  __    _",
	" | ____| \\ | |_ _/ ___|  \\/  |  / \\",
	" |  _| |  \\| || | |  _| |\\/| | / _ \\",
	" | |___| |\\  || | |_| | |  | |/ ___ \\",
	" |_____|_| \\_|___\\____|_|  |_/_/   \\_\\",
}

var bannerColors = []string{"#fbbf24", "#f59e0b", "#d97706", "#b45309", "#92400e"}

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}

// Window renders the rotor window letters as lit boxes, e.g. [A][A][K].
func Window(letters string) string {
	p := termenv.ColorProfile()
	var sb strings.Builder
	for _, c := range letters {
		sb.WriteString(termenv.String(fmt.Sprintf("[%c]", c)).Bold().Foreground(p.Color("#fbbf24")).String())
	}
	return sb.String()
}
