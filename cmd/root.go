package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool

	// source
	flagBaseURL   string
	flagExtractor string
	flagTimeout   int

	// headers/auth
	flagCookie           string
	flagCookieFile       string
	flagUserAgent        string
	flagCloudflareBypass bool

	flagSaveDir string
)

var rootCmd = &cobra.Command{
	Use:   "apodd",
	Short: "Astronomy Picture of the Day viewer and downloader",
	Long: "apodd fetches today's picture from apod.nasa.gov, shows it in the terminal\n" +
		"and saves it as PNG. Without a subcommand it starts the interactive viewer.",
	RunE: runView,

	// Runtime failures are printed once by Execute, without the usage text.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")

	pf.StringVar(&flagBaseURL, "base-url", "", "APOD base URL (the homepage is <base-url>/astropix.html)")
	pf.StringVar(&flagExtractor, "extractor", "", "HTML extraction strategy (regex|dom)")
	pf.IntVar(&flagTimeout, "timeout", 0, "per-request timeout in seconds")

	pf.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	pf.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	pf.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	pf.BoolVar(&flagCloudflareBypass, "cloudflare-bypass", false, "wrap the HTTP transport with the Cloudflare bypass")

	pf.StringVar(&flagSaveDir, "dir", "", "directory images are saved to")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
