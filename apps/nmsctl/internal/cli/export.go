package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oyaguma3/lte-nms/pkg/csvimport"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		networkID string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every subscriber of a network as CSV in the import template format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}

			subs, err := api.ListSubscribers(cmd.Context(), networkID)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := csvimport.WriteCSV(&buf, subs); err != nil {
				return err
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d subscriber(s) to %s\n", len(subs), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&networkID, "network", "n", "", "source network ID")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}
