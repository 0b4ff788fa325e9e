package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/mini"
	"github.com/streambox/streambox/player"
	"github.com/streambox/streambox/preference"
	"github.com/streambox/streambox/provider"
)

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringP("player", "p", "", "Media player to use (mpv, iina, vlc, open)")
	_ = browseCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Available(), cobra.ShellCompDirectiveNoFileComp
	})
	browseCmd.Flags().Bool("print", false, "Print stream URLs instead of starting a player")
}

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"mini"},
	Short:   "Browse sources in the terminal and play episodes in an external player",
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := newSources()
		handleErr(err)

		options := &mini.Options{
			Sources: sources,
			Order:   provider.IDs(),
			Out:     os.Stdout,
		}

		if cmd.Flag("source").Changed {
			src, err := lookupSource(sources, viper.GetString(key.DefaultSource))
			handleErr(err)
			options.Source = src.ID()
		}

		if viper.GetBool(key.SessionRememberQuality) {
			options.Preferences = preference.Store{}
		}

		if printOnly, _ := cmd.Flags().GetBool("print"); !printOnly {
			name := viper.GetString(key.Player)
			if flag, _ := cmd.Flags().GetString("player"); flag != "" {
				name = flag
			}
			if !checkPlayer(name) {
				os.Exit(1)
			}
			p, err := player.New(name)
			handleErr(err)
			options.Player = p
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		handleErr(mini.Run(ctx, options))
	},
}
