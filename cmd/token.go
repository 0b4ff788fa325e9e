package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/streambox/streambox/auth"
	"github.com/streambox/streambox/color"
	"github.com/streambox/streambox/icon"
	"github.com/streambox/streambox/style"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the gateway token stored in the system keyring",
	Long: `Manage the gateway token stored in the system keyring.

The stored token is used by serve when neither --token nor server.token is set.`,
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenSetCmd.Flags().BoolP("generate", "g", false, "Generate a random token")
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store a token, prompting for it when not given",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		switch {
		case lo.Must(cmd.Flags().GetBool("generate")):
			buf := make([]byte, 16)
			lo.Must(rand.Read(buf))
			token = hex.EncodeToString(buf)
		case len(args) == 1:
			token = args[0]
		default:
			handleErr(survey.AskOne(&survey.Password{Message: "Token"}, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(token))
		fmt.Printf("%s stored token %s\n", style.Fg(color.Green)(icon.Get(icon.Key)), style.Faint(mask(token)))
	},
}

func init() {
	tokenCmd.AddCommand(tokenGetCmd)
}

var tokenGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		token, err := auth.Token()
		handleErr(err)
		fmt.Println(token)
	},
}

func init() {
	tokenCmd.AddCommand(tokenDeleteCmd)
}

var tokenDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Remove the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s deleted token\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

// mask keeps the first and last two characters of a token.
func mask(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****" + token[len(token)-2:]
}
