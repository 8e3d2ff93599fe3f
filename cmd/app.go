package cmd

import (
	"github.com/brogergvhs/apodd/internal/apod"
	"github.com/brogergvhs/apodd/internal/config"
	"github.com/brogergvhs/apodd/internal/downloader"
	"github.com/brogergvhs/apodd/internal/extract"
	"github.com/brogergvhs/apodd/internal/ui"
	"github.com/brogergvhs/apodd/internal/util"
)

var _ apod.DirectorySource = (*config.Config)(nil)

func loadConfig() (*config.Config, string, error) {
	return config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		SaveDir:          flagSaveDir,
		BaseURL:          flagBaseURL,
		Extractor:        flagExtractor,
		TimeoutSeconds:   flagTimeout,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		UserAgent:        flagUserAgent,
		CloudflareBypass: flagCloudflareBypass,
		NoFetchOnStart:   flagNoFetch,
	})
}

// newFetcher wires the HTTP client, downloader and extractor described by
// cfg into a Fetcher. The config itself supplies the save directory.
func newFetcher(cfg *config.Config, logSvc *ui.Logger, opts apod.Options) (*apod.Fetcher, error) {
	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout(),
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return nil, err
	}

	ex, err := extract.New(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	opts.BaseURL = cfg.BaseURL
	opts.Source = downloader.New(client, cfg.Timeout(), logSvc)
	opts.Extractor = ex
	opts.Dirs = cfg
	opts.Logger = logSvc

	return apod.NewFetcher(opts)
}
