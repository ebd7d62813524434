// Package cli implements the todotrack command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmathes/todotrack/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todotrack",
	Short: "Personal task tracker",
	Long: `todotrack tracks tasks and completions in a local SQLite store.

Quick start:
  todotrack add "Write the report" --priority high
  todotrack list
  todotrack done 1 --evidence "sent to boss"
  todotrack streak
  todotrack export

Run 'todotrack ui' for the interactive terminal UI or
'todotrack serve' for the REST API.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.todotrack/config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "path to the SQLite store")
	rootCmd.PersistentFlags().String("summaries-dir", "", "directory for exported summaries")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("store_path", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("summaries_dir", rootCmd.PersistentFlags().Lookup("summaries-dir"))

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newDoneCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newQuickCmd())
	rootCmd.AddCommand(newStreakCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME/" + config.TrackDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TODOTRACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig resolves the effective configuration: defaults overridden by
// config file, environment, and flags.
func loadConfig() *config.Config {
	cfg := config.Default()
	if v := viper.GetString("store_path"); v != "" {
		cfg.StorePath = v
	}
	if v := viper.GetString("summaries_dir"); v != "" {
		cfg.SummariesDir = v
	}
	if v := viper.GetString("listen_addr"); v != "" {
		cfg.ListenAddr = v
	}
	return cfg
}
