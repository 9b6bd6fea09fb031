package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/lattice/errors"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		printError(errorMessage(err))
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "lattice",
		Short: "Parse Lattice source and report syntax diagnostics",
		Long: `lattice parses Lattice source text with a chosen start rule and prints
the resulting parse tree, or a diagnostic with source excerpts and hints.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			processGlobalFlags(v)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is .lattice.yaml in . or $HOME)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = v.BindPFlags(flags)
	_ = v.BindEnv("no-color", "NO_COLOR", "LATTICE_NO_COLOR")

	root.AddCommand(newParseCmd(v), newRulesCmd(v), newVersionCmd(v))
	return root
}

// initConfig reads the optional config file and environment.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("lattice")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".lattice")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func newVersionCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   version,
				Commit:    commit,
				Date:      date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			if v.GetString("version-output") == "json" {
				data, err := getOutputJSON(v, out, info)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprintf(out, "lattice %s\n", info.Version)
			fmt.Fprintf(out, "  commit:   %s\n", info.Commit)
			fmt.Fprintf(out, "  built:    %s\n", info.Date)
			fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
			fmt.Fprintf(out, "  platform: %s\n", info.Platform)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	_ = v.BindPFlag("version-output", cmd.Flags().Lookup("output"))
	return cmd
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// errorMessage prefers the friendly form of err when it has one.
func errorMessage(err error) string {
	if fe, ok := err.(errors.FriendlyError); ok {
		return fe.FriendlyErrorMessage()
	}
	return err.Error()
}

func printError(msg string) {
	fmt.Fprintln(os.Stderr, red(msg))
}

var red = color.New(color.FgRed).SprintFunc()
