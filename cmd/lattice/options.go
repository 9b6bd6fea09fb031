package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/internal/source"
	"github.com/risor-io/lattice/parser"
)

// Returns the parser options configured by flags, env and config file.
func getParserOptions(v *viper.Viper) []parser.Option {
	var opts []parser.Option
	if depth := v.GetInt("max-depth"); depth > 0 {
		opts = append(opts, parser.WithMaxDepth(depth))
	}
	return opts
}

// Returns the start rule named by --rule.
func getRule(v *viper.Viper) (parser.Rule, error) {
	name := v.GetString("rule")
	rule, ok := parser.RuleByName(name)
	if !ok {
		msg := fmt.Sprintf("unknown rule %q", name)
		if hint := parser.SuggestRule(name); hint != "" {
			msg += ". " + hint
		}
		return parser.RuleInvalid, fmt.Errorf("%s (run `lattice rules` for a list)", msg)
	}
	return rule, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// Returns readers for the source to parse. There are three possibilities:
// 1. --code <code>
// 2. --stdin (read code from stdin)
// 3. one or more paths as args
func getSources(cmd *cobra.Command, args []string) ([]source.Reader, error) {
	codeFlagSet := flagChanged(cmd, "code")
	stdinFlagSet := flagChanged(cmd, "stdin")
	pathSupplied := len(args) > 0
	if (pathSupplied && (codeFlagSet || stdinFlagSet)) || (codeFlagSet && stdinFlagSet) {
		return nil, fmt.Errorf("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		r, err := source.FromReader("<stdin>", cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []source.Reader{r}, nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return []source.Reader{source.NewString("<code>", code)}, nil
	case pathSupplied:
		readers := make([]source.Reader, 0, len(args))
		for _, path := range args {
			r, err := source.Open(path)
			if err != nil {
				return nil, errors.Newf(errors.ErrInput, errors.E1014, path, "cannot read source: %v", err)
			}
			readers = append(readers, r)
		}
		return readers, nil
	default:
		return nil, fmt.Errorf("no input provided (pass files, --code or --stdin)")
	}
}
