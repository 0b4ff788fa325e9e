package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/auth"
	"github.com/streambox/streambox/catalog"
	"github.com/streambox/streambox/color"
	"github.com/streambox/streambox/gateway"
	"github.com/streambox/streambox/icon"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/network"
	"github.com/streambox/streambox/provider"
	"github.com/streambox/streambox/source"
	"github.com/streambox/streambox/style"
	"github.com/streambox/streambox/util"
	"github.com/streambox/streambox/web"
)

var serveFlags = map[string]string{
	"addr":     key.ServerAddr,
	"token":    key.ServerToken,
	"upstream": key.UpstreamBase,
}

// addServeFlags defines the flags of serve on cmd. They are bound when cmd runs,
// since the root command and serve share the keys.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("addr", "a", "", "Address to listen on")
	cmd.Flags().StringP("token", "t", "", "Shared secret required as ?token= on every request")
	cmd.Flags().StringP("upstream", "u", "", "Base URL that /api/* is forwarded to")
}

func bindServeFlags(cmd *cobra.Command) {
	for name, k := range serveFlags {
		lo.Must0(viper.BindPFlag(k, cmd.Flags().Lookup(name)))
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gateway, the catalog API and the web panel",
	Long: `Serve the gateway, the catalog API and the web panel.

Routes:
  /api/*       forwarded to the upstream media API
  /catalog/*   normalized listings, episodes and streams of every source
  /            the web panel
  /health      liveness probe
  /metrics     Prometheus metrics

When a token is set, every request must carry it as ?token=.`,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(serve(cmd))
	},
}

// newGateway builds the upstream relay on the shared network client.
func newGateway() (*gateway.Gateway, error) {
	network.Setup()

	return gateway.New(gateway.Options{
		Base:        viper.GetString(key.UpstreamBase),
		DefaultLang: viper.GetString(key.UpstreamDefaultLang),
		CacheTTL:    viper.GetInt(key.UpstreamCacheTTL),
		Client:      network.Client,
	})
}

// newSources creates every built-in source over a fresh gateway.
func newSources() (map[string]source.Source, error) {
	g, err := newGateway()
	if err != nil {
		return nil, err
	}
	return provider.Sources(g), nil
}

func lookupSource(sources map[string]source.Source, name string) (source.Source, error) {
	if p, ok := provider.Get(name); ok {
		return sources[p.ID], nil
	}
	return nil, fmt.Errorf(
		"unknown source %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(provider.Closest(name).ID),
	)
}

func serveToken() string {
	if token := viper.GetString(key.ServerToken); token != "" {
		return token
	}

	token, err := auth.LookupToken()
	if err != nil {
		log.Warnf("reading token from keyring: %v", err)
		return ""
	}
	return token
}

func serve(cmd *cobra.Command) error {
	bindServeFlags(cmd)
	if viper.GetBool(key.LogsStderr) {
		log.Attach(os.Stderr)
	}

	g, err := newGateway()
	if err != nil {
		return err
	}
	sources := provider.Sources(g)

	token := serveToken()
	server := gateway.NewServer(g, gateway.ServerOptions{
		Token:       token,
		Metrics:     viper.GetBool(key.MetricsEnabled),
		ReadTimeout: time.Duration(viper.GetInt(key.ServerReadTimeout)) * time.Second,
		Index:       web.Index(),
		Mount: func(router fiber.Router) {
			catalog.Mount(router, sources, provider.IDs())
		},
	})

	addr := viper.GetString(key.ServerAddr)
	cmd.Printf("%s %s -> %s, %s\n",
		icon.Get(icon.Server),
		style.Fg(color.Purple)(addr),
		style.Fg(color.Yellow)(viper.GetString(key.UpstreamBase)),
		util.Quantify(len(sources), "source", "sources"),
	)
	if token == "" {
		cmd.Println(style.Faint("no token set, the gateway is open to anyone who can reach it"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, addr)
}
