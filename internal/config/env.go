package config

import (
	"github.com/spf13/viper"
)

const envPrefix = "APODD"

// applyEnv overrides file values with APODD_* environment variables.
func applyEnv(c *Config) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	for _, key := range []string{
		"save_directory",
		"base_url",
		"timeout_seconds",
		"extractor",
		"user_agent",
		"cookie",
		"cookie_file",
		"debug",
		"cloudflare_bypass",
		"fetch_on_start",
	} {
		_ = v.BindEnv(key)
	}

	if v.IsSet("save_directory") {
		c.SaveDir = v.GetString("save_directory")
	}
	if v.IsSet("base_url") {
		c.BaseURL = v.GetString("base_url")
	}
	if v.IsSet("timeout_seconds") {
		c.TimeoutSeconds = v.GetInt("timeout_seconds")
	}
	if v.IsSet("extractor") {
		c.Extractor = v.GetString("extractor")
	}
	if v.IsSet("user_agent") {
		c.UserAgent = v.GetString("user_agent")
	}
	if v.IsSet("cookie") {
		c.Cookie = v.GetString("cookie")
	}
	if v.IsSet("cookie_file") {
		c.CookieFile = v.GetString("cookie_file")
	}
	if v.IsSet("debug") {
		c.Debug = v.GetBool("debug")
	}
	if v.IsSet("cloudflare_bypass") {
		c.CloudflareBypass = v.GetBool("cloudflare_bypass")
	}
	if v.IsSet("fetch_on_start") {
		c.FetchOnStart = v.GetBool("fetch_on_start")
	}
}
