// Package cli implements the navpolicy command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	format     string
}

// NewRootCommand builds the navpolicy command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "navpolicy",
		Short: "Address bar resolution, navigation routing and tracker blocking decisions",
		Long: "Answers the questions a browser shell asks on every navigation: what to load for typed input,\n" +
			"whether a target stays in the view, and whether a sub-resource request is a cross-site tracker.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(opts.format)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file (default $NAVPOLICY_CONFIG or /etc/navpolicy/navpolicy.conf)")
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "Output format (text|json|yaml)")

	cmd.AddCommand(
		newClassifyCmd(opts),
		newResolveCmd(opts),
		newRouteCmd(opts),
		newCheckCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be one of: text, json, yaml)", format)
	}
}
