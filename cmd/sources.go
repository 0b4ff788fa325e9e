package cmd

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/color"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/provider"
	"github.com/streambox/streambox/source"
	"github.com/streambox/streambox/style"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the built-in sources",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print only source ids")
	sourcesListCmd.SetOut(os.Stdout)
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in sources and their listing modes",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, id := range provider.IDs() {
				cmd.Println(id)
			}
			return
		}

		sources, err := newSources()
		handleErr(err)

		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		fallback := viper.GetString(key.DefaultSource)

		for i, id := range provider.IDs() {
			src := sources[id]
			name := headerStyle(src.Name())
			if id == fallback {
				name += " " + style.Faint("(default)")
			}

			cmd.Printf("%s %s\n", name, style.Fg(color.Yellow)(id))
			modes := lo.Map(src.Modes(), func(m source.Mode, _ int) string {
				if m.Search {
					return m.ID + style.Faint(" [search]")
				}
				return m.ID
			})
			cmd.Println("  " + strings.Join(modes, ", "))

			if i < len(sources)-1 {
				cmd.Println()
			}
		}
	},
}
