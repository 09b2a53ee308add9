// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// configName is the name of the config file looked up in the home directory
	configName = ".rawtrace"
	// envPrefix prefixes all environment variables, e.g. RAWTRACE_TRACE_TIMEOUT
	envPrefix = "rawtrace"
)

// NewCmdRoot creates the rawtrace root command
func NewCmdRoot(version string) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "rawtrace",
		Short: "rawtrace, a raw socket IPv4 traceroute",
		Long: "rawtrace sends hand-built IPv4 probes with increasing TTL and reports\n" +
			"the routers answering on the path to a destination host.\n" +
			"Sending raw packets requires the NET_RAW capability.",
		Version:       version,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return initConfig(cfgFile)
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/"+configName+".yaml)")

	return root
}

// Execute runs the command tree and exits with status 1 on any error
func Execute(version string) {
	if err := BuildCmd(version).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// BuildCmd assembles the root command with all sub commands
func BuildCmd(version string) *cobra.Command {
	root := NewCmdRoot(version)
	root.AddCommand(NewCmdTrace(version))
	return root
}

// initConfig reads the config file and binds the environment.
// A missing default config file is not an error, a missing explicit one is.
func initConfig(cfgFile string) error {
	viper.SetOptions(viper.ExperimentalBindStruct())
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.SetConfigFile(filepath.Join(home, configName+".yaml"))
	} else {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile == "" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	// Stdout carries the trace output
	_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}
