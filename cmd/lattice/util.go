package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor reports whether output written to w should be colored.
func useColor(v *viper.Viper, w io.Writer) bool {
	return !v.GetBool("no-color") && isTerminal(w)
}

func getOutputJSON(v *viper.Viper, w io.Writer, value any) ([]byte, error) {
	if !useColor(v, w) {
		return json.MarshalIndent(value, "", "  ")
	}
	return prettyjson.Marshal(value)
}

// newLogger returns a console logger writing to w at the configured level.
func newLogger(v *viper.Viper, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return zerolog.Nop(), err
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: !useColor(v, w)}
	return zerolog.New(console).Level(level).With().Timestamp().Logger(), nil
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(v *viper.Viper) {
	if v.GetBool("no-color") {
		color.NoColor = true
	}
}
