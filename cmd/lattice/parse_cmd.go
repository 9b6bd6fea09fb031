package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/errors/render"
	"github.com/risor-io/lattice/internal/source"
	"github.com/risor-io/lattice/parser"
)

func newParseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse source and print the tree or a diagnostic",
		Example: `  lattice parse examples/shapes.lat
  lattice parse --rule list --code '[1, 2, ...rest]'
  echo '#interval[+ 1..4 9]' | lattice parse --stdin --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return parseHandler(cmd, v, args)
		},
	}
	flags := cmd.Flags()
	flags.StringP("rule", "r", parser.RuleExpression.String(), "start rule (see `lattice rules`)")
	flags.Int("max-depth", parser.DefaultMaxDepth, "maximum nesting depth")
	flags.StringP("output", "o", "tree", "output format (tree, text, json)")
	flags.StringP("code", "c", "", "code to parse")
	flags.Bool("stdin", false, "read code from stdin")
	for _, name := range []string{"rule", "max-depth", "output"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

func parseHandler(cmd *cobra.Command, v *viper.Viper, args []string) error {
	rule, err := getRule(v)
	if err != nil {
		return err
	}
	format := v.GetString("output")
	if !isOutputFormat(format) {
		return fmt.Errorf("unknown output format: %s", format)
	}
	sources, err := getSources(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	formatter := render.NewFormatter(useColor(v, errOut))
	options := getParserOptions(v)

	var (
		result *multierror.Error
		diags  []*errors.Diagnostic
		texts  []string
	)
	for _, src := range sources {
		runID, err := uuid.NewV4()
		if err != nil {
			return err
		}
		ctx := logger.With().
			Str("run_id", runID.String()).
			Str("source", src.Name()).
			Logger().
			WithContext(cmd.Context())

		if err := parseOne(ctx, v, out, src, rule, format, options); err != nil {
			if d, ok := err.(*errors.Diagnostic); ok {
				diags = append(diags, d)
				texts = append(texts, src.Text())
			} else {
				fmt.Fprintln(errOut, red(err.Error()))
			}
			result = multierror.Append(result, err)
		}
	}
	fmt.Fprint(errOut, formatter.FormatMultiple(diags, texts))
	if result != nil {
		total := len(sources)
		result.ErrorFormat = func(errs []error) string {
			return fmt.Sprintf("%d of %d inputs failed to parse", len(errs), total)
		}
	}
	return result.ErrorOrNil()
}

func parseOne(ctx context.Context, v *viper.Viper, out io.Writer, src source.Reader, rule parser.Rule, format string, options []parser.Option) error {
	tree, err := parser.ParseReader(ctx, src, rule, options...)
	if err != nil {
		return err
	}
	text, err := formatTree(v, out, tree, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func newRulesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules a parse can start from",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			type ruleInfo struct {
				Name        string `json:"name"`
				Description string `json:"description"`
			}
			var rules []ruleInfo
			for _, name := range parser.StartRules() {
				rule, _ := parser.RuleByName(name)
				rules = append(rules, ruleInfo{Name: name, Description: rule.Description()})
			}
			if v.GetString("rules-output") == "json" {
				data, err := getOutputJSON(v, out, rules)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			for _, r := range rules {
				fmt.Fprintf(out, "%-22s %s\n", r.Name, r.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	_ = v.BindPFlag("rules-output", cmd.Flags().Lookup("output"))
	return cmd
}
