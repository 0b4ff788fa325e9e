package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/inline"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/preference"
	"github.com/streambox/streambox/query"
	"github.com/streambox/streambox/util"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("mode", "m", "", "Listing mode of the source, e.g. foryou or search")
	inlineCmd.Flags().StringP("query", "q", "", "Search text; selects the search mode unless --mode is set")
	inlineCmd.Flags().IntP("page", "p", 1, "Page of the listing, starting from 1")
	inlineCmd.Flags().StringP("item", "i", "", "Criteria for selecting one item of the listing")
	inlineCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting episodes of the chosen item")
	inlineCmd.Flags().BoolP("streams", "s", false, "Resolve the streams of the selected episodes")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	inlineCmd.MarkFlagsMutuallyExclusive("mode", "query")

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Print a listing, episodes or streams of a source without prompts",
	Long: `Print a listing, episodes or streams of a source without prompts.

Item selectors:
  first - first item of the listing
  last - last item of the listing
  exact - the item whose title or id equals the query
  [number] - select an item by index (starting from 0)

Episode selectors:
  first - first episode in the list
  last - last episode in the list
  all - all episodes in the list
  [number] - select episode by index (starting from 0)
  [from]-[to] - select episodes by range
  @[substring]@ - select episodes by label substring

Without an item selector every item of the page is printed, which is only useful with --json
or without episode selectors.`,
	Example: `  streambox inline -S dramabox -q "love" -i first -e 0-2 -s
  streambox inline -S moviebox -m trending --json`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := newSources()
		handleErr(err)

		src, err := lookupSource(sources, viper.GetString(key.DefaultSource))
		handleErr(err)

		q := lo.Must(cmd.Flags().GetString("query"))

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		itemPicker := mo.None[inline.ItemPicker]()
		if flag := lo.Must(cmd.Flags().GetString("item")); flag != "" {
			fn, err := inline.ParseItemPicker(flag, q)
			handleErr(err)
			itemPicker = mo.Some(fn)
		}

		episodesFilter := mo.None[inline.EpisodesFilter]()
		if flag := lo.Must(cmd.Flags().GetString("episodes")); flag != "" {
			fn, err := inline.ParseEpisodesFilter(flag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:            writer,
			Source:         src,
			Mode:           lo.Must(cmd.Flags().GetString("mode")),
			Query:          q,
			Page:           lo.Must(cmd.Flags().GetInt("page")),
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			ItemPicker:     itemPicker,
			EpisodesFilter: episodesFilter,
			Streams:        lo.Must(cmd.Flags().GetBool("streams")),
		}
		if viper.GetBool(key.SessionRememberQuality) {
			options.Preferences = preference.Store{}
		}

		if q != "" {
			if err := query.Remember(q, src.ID(), 1); err != nil {
				log.Warnf("remembering query: %v", err)
			}
		}

		handleErr(inline.Run(context.Background(), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inline JSON output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "episode", "output", "entry":
				return filepath.Base(t.PkgPath()) + "." + name
			}
			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
