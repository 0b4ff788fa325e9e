package version

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/streambox/streambox/color"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/icon"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/style"
)

// Notify prints a notice to w when a newer release than the running one exists.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	fmt.Fprintf(w, "\r%s Checking for a new version...", icon.Get(icon.Progress))
	latest, err := Latest()
	fmt.Fprint(w, "\r\033[K")
	if err != nil {
		return
	}
	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(w, "\n%s New version is available %s %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/streambox/streambox/releases/tag/v"+latest),
	)
}
