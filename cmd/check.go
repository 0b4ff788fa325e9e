package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/icon"
	"github.com/streambox/streambox/player"
	"github.com/streambox/streambox/style"
)

// checkPlayer reports whether the binary behind the named player is in PATH,
// printing install instructions when it is not.
func checkPlayer(name string) bool {
	binary := player.Binary(name)
	if binary == "" {
		return true
	}
	if _, err := exec.LookPath(binary); err == nil {
		return true
	}

	printMissingDependencyError(binary)
	return false
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install " + dep
	case constant.Linux:
		installCmd = "sudo apt install " + dep
	case constant.Windows:
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Missing player", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("%q was not found in your PATH.\nUse --print to get stream URLs instead.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, suggestion)))
}
