package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"navpolicy/pkg/policy"
)

func newCheckCmd(opts *options) *cobra.Command {
	var (
		initiator    string
		referrer     string
		resourceType string
	)

	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Check whether a sub-resource request would be blocked as a tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := policy.ParseResourceType(resourceType)
			if err != nil {
				return err
			}

			cfg, log, logCloser, err := opts.load()
			if err != nil {
				return err
			}
			defer closeLog(logCloser)
			s, err := newStack(cmd.Context(), cfg, log, nil)
			if err != nil {
				return err
			}
			defer func() {
				if err := s.Close(); err != nil {
					log.Warn("failed to close blocked log", "error", err)
				}
			}()

			req := policy.Request{URL: args[0], Initiator: initiator, Referrer: referrer, Type: typ}
			result := newVerdictResult(req, s.engine.CheckRequest(req))

			return render(cmd.OutOrStdout(), opts.format, result, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, result.text())
				return err
			})
		},
	}

	cmd.Flags().StringVar(&initiator, "initiator", "", "URL of the page issuing the request")
	cmd.Flags().StringVar(&referrer, "referrer", "", "Referrer, used when the initiator is missing")
	cmd.Flags().StringVar(&resourceType, "type", "other", "Resource type (script, image, xhr, subFrame, mainFrame, ...)")
	return cmd
}
