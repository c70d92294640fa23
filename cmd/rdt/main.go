package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/reddit-client/cmd/rdt/commands"
	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "rdt",
	Short: "Reddit account CLI",
	Long: `A command-line interface for the Reddit account API.

It covers the logged in identity, karma, preferences, trophies, friends and
other relationship lists, OAuth scopes and subreddit wiki pages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.rdt/config.yml)")
	rootCmd.PersistentFlags().StringP("profile", "P", "", "profile to use (default is the current profile)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output, including HTTP traffic")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	// Bind flags to viper
	for _, name := range []string{"config", "profile", "output", "verbose", "log-format"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewMeCommand())
	rootCmd.AddCommand(commands.NewKarmaCommand())
	rootCmd.AddCommand(commands.NewPrefsCommand())
	rootCmd.AddCommand(commands.NewTrophiesCommand())
	rootCmd.AddCommand(commands.NewFriendsCommand())
	rootCmd.AddCommand(commands.NewMessagingCommand())
	rootCmd.AddCommand(commands.NewBlockedCommand())
	rootCmd.AddCommand(commands.NewTrustedCommand())
	rootCmd.AddCommand(commands.NewScopesCommand())
	rootCmd.AddCommand(commands.NewWikiCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".rdt")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.rdt/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// RDT_CLIENT_ID, RDT_PASSWORD, RDT_PROFILE, ...
	viper.SetEnvPrefix("RDT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

func initLogging() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if viper.GetString("log-format") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
