package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
	"github.com/iambhvsh/ytdl/internal/core/version"
	"golang.org/x/term"
)

const bannerArt = `
██╗   ██╗████████╗██████╗ ██╗
╚██╗ ██╔╝╚══██╔══╝██╔══██╗██║
 ╚████╔╝    ██║   ██║  ██║██║
  ╚██╔╝     ██║   ██║  ██║██║
   ██║      ██║   ██████╔╝███████╗
   ╚═╝      ╚═╝   ╚═════╝ ╚══════╝`

const defaultTermWidth = 80

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	creditsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// terminalWidth reports the width of stdout, or a default when it is not a
// terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

// printBanner writes the logo, credits and quit hint centered to width.
func printBanner(w io.Writer, t *i18n.Translations, width int) {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	// Center the art as a block so its lines stay aligned.
	art := bannerStyle.Render(strings.Trim(bannerArt, "\n"))
	fmt.Fprintln(w, lipgloss.PlaceHorizontal(width, lipgloss.Center, art))
	fmt.Fprintln(w)
	fmt.Fprintln(w, center.Render(creditsStyle.Render(fmt.Sprintf("%s  v%s", t.Session.Credits, version.Version))))
	fmt.Fprintln(w, center.Render(hintStyle.Render(t.Session.QuitHint)))
	fmt.Fprintln(w)
}
