package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"navpolicy/pkg/route"
)

type routeResult struct {
	Target   string `json:"target" yaml:"target"`
	Origin   string `json:"origin" yaml:"origin"`
	Decision string `json:"decision" yaml:"decision"`
}

func newRouteCmd(opts *options) *cobra.Command {
	var origin string

	cmd := &cobra.Command{
		Use:   "route <url>",
		Short: "Decide whether a navigation target loads in the view or opens externally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := routeResult{
				Target:   args[0],
				Origin:   origin,
				Decision: route.Route(args[0], origin).String(),
			}
			return render(cmd.OutOrStdout(), opts.format, result, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, result.Decision)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "Origin of the page the view is showing (e.g. https://example.com)")
	return cmd
}
