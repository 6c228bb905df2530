package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"navpolicy/pkg/hostclass"
)

type classifyResult struct {
	Host       string `json:"host" yaml:"host"`
	Recognized bool   `json:"recognized" yaml:"recognized"`
	Kind       string `json:"kind" yaml:"kind"`
	Private    bool   `json:"private" yaml:"private"`
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <host>",
		Short: "Classify a host token as localhost, IPv4, IPv6 or hostname",
		Long:  "Reports the host kind and whether it is loopback, private or link-local.\nIPv6 literals must be bracketed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := hostclass.Classify(args[0])
			result := classifyResult{
				Host:       args[0],
				Recognized: ok,
				Kind:       info.Kind.String(),
			}
			if ok {
				result.Private = hostclass.IsPrivate(info)
			}

			return render(cmd.OutOrStdout(), opts.format, result, func(w io.Writer) error {
				scope := "public"
				if result.Private {
					scope = "private"
				}
				if !result.Recognized {
					scope = "-"
				}
				_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", result.Host, result.Kind, scope)
				return err
			})
		},
	}
}
