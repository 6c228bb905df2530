package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"navpolicy/pkg/policy"
)

type resolveResult struct {
	Input string `json:"input" yaml:"input"`
	Kind  string `json:"kind" yaml:"kind"`
	URL   string `json:"url" yaml:"url"`
	Query string `json:"query,omitempty" yaml:"query,omitempty"`
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <text...>",
		Short: "Resolve address bar input into a URL or a search",
		Long:  "Arguments are joined with single spaces and resolved the way the address bar would.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, logCloser, err := opts.load()
			if err != nil {
				return err
			}
			defer closeLog(logCloser)
			engine := policy.New(policy.Options{SearchTemplate: cfg.Search.Template, Log: log})

			input := strings.Join(args, " ")
			target, ok := engine.Resolve(input)
			if !ok {
				return errors.New("nothing to load: input is blank")
			}

			result := resolveResult{
				Input: input,
				Kind:  target.Kind.String(),
				URL:   target.URL,
				Query: target.Query,
			}
			return render(cmd.OutOrStdout(), opts.format, result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s\t%s\n", result.Kind, result.URL)
				return err
			})
		},
	}
}
