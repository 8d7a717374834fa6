package cmd

import (
	"github.com/gnames/gndash/pkg/config"
	"github.com/spf13/cobra"
)

// serveFlags converts explicitly set serve flags to config options.
func serveFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("host") {
		s, _ := flags.GetString("host")
		res = append(res, config.OptServerHost(s))
	}
	if flags.Changed("port") {
		i, _ := flags.GetInt("port")
		res = append(res, config.OptServerPort(i))
	}
	if flags.Changed("store") {
		s, _ := flags.GetString("store")
		res = append(res, config.OptStoreBackend(s))
	}
	if flags.Changed("sqlite-path") {
		s, _ := flags.GetString("sqlite-path")
		res = append(res, config.OptStoreSQLitePath(s))
	}
	return res
}

// uploadFlags converts explicitly set upload flags to config options.
func uploadFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("fix-utf8") {
		b, _ := flags.GetBool("fix-utf8")
		res = append(res, config.OptUploadFixUTF8(b))
	}
	if flags.Changed("max-upload-mb") {
		i, _ := flags.GetInt("max-upload-mb")
		res = append(res, config.OptServerMaxUploadMB(i))
	}
	return res
}

func addUploadFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fix-utf8", false, "repair invalid UTF-8 in CSV files")
	cmd.Flags().Int("max-upload-mb", 0, "largest accepted file in megabytes")
}
