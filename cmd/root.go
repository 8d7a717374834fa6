/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/internal/iofs"
	"github.com/gnames/gndash/internal/iologger"
	app "github.com/gnames/gndash/pkg"
	"github.com/gnames/gndash/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gndash",
		Short:   "GNdash explores specimen metadata of butterfly images",
		Long: `GNdash is a service for exploring specimen metadata uploads
(CSV, TSV or XLSX). It validates the columns of an upload, aggregates
specimens by locality, builds species/subspecies selection lists and draws
random samples of specimen images.

Commands:
  - serve:   run the HTTP API
  - inspect: validate uploads and print their summaries
  - sample:  draw random images from an upload

Configuration precedence (highest to lowest):
  1. CLI flags (--port, --store, etc.)
  2. Environment variables (GNDASH_*)
  3. Config file (~/.config/gndash/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (server.port → GNDASH_SERVER_PORT).

  Examples:
    GNDASH_SERVER_PORT              HTTP port
    GNDASH_STORE_BACKEND            memory, sqlite or postgres
    GNDASH_STORE_POSTGRES_HOST      PostgreSQL host
    GNDASH_NOTIFY_MQTT_BROKER       MQTT broker URL
    GNDASH_LOG_LEVEL                Log level (debug/info/warn/error)

  See 'go doc github.com/gnames/gndash/pkg/config' for complete list.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gndash version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gndash")

	rootCmd.AddCommand(getServeCmd())
	rootCmd.AddCommand(getInspectCmd())
	rootCmd.AddCommand(getSampleCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envVars maps config keys to the environment variables that override
// them. They match the fields included in config.ToOptions().
var envVars = [][2]string{
	{"server.host", "GNDASH_SERVER_HOST"},
	{"server.port", "GNDASH_SERVER_PORT"},
	{"server.max_upload_mb", "GNDASH_SERVER_MAX_UPLOAD_MB"},
	{"server.upload_rate_per_minute", "GNDASH_SERVER_UPLOAD_RATE_PER_MINUTE"},
	{"server.session_ttl", "GNDASH_SERVER_SESSION_TTL"},
	{"server.session_secret", "GNDASH_SERVER_SESSION_SECRET"},
	{"server.allowed_origins", "GNDASH_SERVER_ALLOWED_ORIGINS"},

	{"store.backend", "GNDASH_STORE_BACKEND"},
	{"store.sqlite_path", "GNDASH_STORE_SQLITE_PATH"},
	{"store.postgres.host", "GNDASH_STORE_POSTGRES_HOST"},
	{"store.postgres.port", "GNDASH_STORE_POSTGRES_PORT"},
	{"store.postgres.user", "GNDASH_STORE_POSTGRES_USER"},
	{"store.postgres.password", "GNDASH_STORE_POSTGRES_PASSWORD"},
	{"store.postgres.database", "GNDASH_STORE_POSTGRES_DATABASE"},
	{"store.postgres.ssl_mode", "GNDASH_STORE_POSTGRES_SSL_MODE"},

	{"upload.fix_utf8", "GNDASH_UPLOAD_FIX_UTF8"},

	{"notify.mqtt_broker", "GNDASH_NOTIFY_MQTT_BROKER"},
	{"notify.mqtt_topic", "GNDASH_NOTIFY_MQTT_TOPIC"},
	{"notify.mqtt_client_id", "GNDASH_NOTIFY_MQTT_CLIENT_ID"},

	{"log.level", "GNDASH_LOG_LEVEL"},
	{"log.format", "GNDASH_LOG_FORMAT"},
	{"log.destination", "GNDASH_LOG_DESTINATION"},
}

func initEnvVars(v *viper.Viper) {
	// Variables are bound one by one so it is clear which ones are
	// allowed. BindEnv with an explicit name does not add the prefix.
	v.SetEnvPrefix("GNDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, kv := range envVars {
		_ = v.BindEnv(kv[0], kv[1])
	}

	v.AutomaticEnv()
}
