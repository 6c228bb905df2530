package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"navpolicy/pkg/version"
)

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"name":    "navpolicy",
				"version": version.NavpolicyVersion,
			}
			return render(cmd.OutOrStdout(), opts.format, info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "navpolicy %s\n", version.NavpolicyVersion)
				return err
			})
		},
	}
}
