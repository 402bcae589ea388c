package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/gtranslate/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gtranslate [text]",
		Short: "Translate text with the Google Translate web endpoints",
		Long: `gtranslate translates free text by calling the unofficial
translate.google.com/translate_a endpoints.

Two endpoint variants are supported: "classic" (translate_a/single) and
"compact" (translate_a/t).

Examples:
  gtranslate -s nl -t tr "hallo ik ga vandaag hardlopen"
  gtranslate -t en --variant compact "goedemorgen"
  gtranslate -t de --batch lines.txt
  echo "hallo" | gtranslate -t en -`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateServeCommand creates the serve subcommand
func CreateServeCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose translation over HTTP",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "Listen address")
	viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

// CreateHistoryCommand creates the history subcommand
func CreateHistoryCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent translations",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVarP(&flags.HistoryLimit, "limit", "n", flags.HistoryLimit, "Number of entries to show")
	cmd.Flags().BoolVar(&flags.ArchiveHistory, "archive", false, "Move the history database to the archive directory")

	return cmd
}

// CreateDetectCommand creates the detect subcommand
func CreateDetectCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [text]",
		Short: "Guess the language of a text locally",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.Flags().Float64Var(&flags.MinConfidence, "min-confidence", flags.MinConfidence, "Minimum detector confidence (0-1) to report a language")

	return cmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.gtranslate.yaml)")
	cmd.PersistentFlags().StringVar(&flags.EnvFile, "env", flags.EnvFile, "Path to a .env file")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&flags.LogJSON, "log-json", false, "Log JSON lines instead of console output")
	cmd.PersistentFlags().StringVarP(&flags.Source, "source", "s", flags.Source, "Source language (auto to detect)")
	cmd.PersistentFlags().StringVarP(&flags.Target, "target", "t", flags.Target, "Target language")
	cmd.PersistentFlags().StringVar(&flags.Variant, "variant", flags.Variant, "Endpoint variant: classic or compact")
	cmd.PersistentFlags().StringVar(&flags.Client, "client", "", "Override the client tag (default depends on variant)")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout per translation request")
	cmd.PersistentFlags().StringVar(&flags.HistoryPath, "history", flags.HistoryPath, "History database path")
	cmd.PersistentFlags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record translations")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate lines from file (one per line)")
	cmd.Flags().IntVar(&flags.Workers, "workers", flags.Workers, "Concurrent requests in batch mode")
	cmd.Flags().IntVar(&flags.MaxFailures, "max-failures", flags.MaxFailures, "Stop a batch after this many consecutive failures (0 = never)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.json", cmd.PersistentFlags().Lookup("log-json"))
	viper.BindPFlag("translate.source", cmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("translate.target", cmd.PersistentFlags().Lookup("target"))
	viper.BindPFlag("translate.variant", cmd.PersistentFlags().Lookup("variant"))
	viper.BindPFlag("translate.client", cmd.PersistentFlags().Lookup("client"))
	viper.BindPFlag("translate.timeout", cmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("history.path", cmd.PersistentFlags().Lookup("history"))
	viper.BindPFlag("history.disabled", cmd.PersistentFlags().Lookup("no-history"))
	viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("batch.max_failures", cmd.Flags().Lookup("max-failures"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".gtranslate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gtranslate")
	}

	// Environment variables, e.g. GTRANSLATE_TRANSLATE_TARGET
	viper.SetEnvPrefix("GTRANSLATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies the merged flag, env and config file values back into
// flags. Flags set on the command line win over everything else.
func ApplyConfig(flags *Flags) {
	flags.LogLevel = viper.GetString("log.level")
	flags.LogJSON = viper.GetBool("log.json")
	flags.Source = viper.GetString("translate.source")
	flags.Target = viper.GetString("translate.target")
	flags.Variant = viper.GetString("translate.variant")
	flags.Client = viper.GetString("translate.client")
	flags.Timeout = viper.GetDuration("translate.timeout")
	flags.HistoryPath = viper.GetString("history.path")
	flags.NoHistory = viper.GetBool("history.disabled")
	flags.Workers = viper.GetInt("batch.workers")
	flags.MaxFailures = viper.GetInt("batch.max_failures")
	if viper.IsSet("serve.addr") {
		flags.Addr = viper.GetString("serve.addr")
	}
}
