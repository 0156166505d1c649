package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyaguma3/lte-nms/pkg/csvimport"
)

// errImportFailures は一部の行の登録に失敗した場合のエラー
var errImportFailures = errors.New("some subscribers could not be created")

func newImportCommand(a *app) *cobra.Command {
	var networkID string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a subscriber CSV file and create every row in a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// 構造エラーの場合はオーケストレータに接続しない
			parsed, err := parseFile(args[0])
			if err != nil {
				return err
			}
			api, err := a.api()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			importer := csvimport.NewImporter(api, a.cfg.ImportConcurrency, a.masker)
			result := importer.Submit(cmd.Context(), networkID, parsed.Rows, csvimport.Callbacks{})

			for _, o := range result.Outcomes {
				if !o.Succeeded() {
					fmt.Fprintf(out, "line %d %s: %v\n", o.Line, o.IMSI, o.Err)
				}
			}
			fmt.Fprintf(out, "imported %d, failed %d\n", len(result.SucceededIDs), len(result.FailedIMSIs))

			if result.HasFailures() {
				return fmt.Errorf("%w: %d of %d", errImportFailures, len(result.FailedIMSIs), len(parsed.Rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&networkID, "network", "n", "", "target network ID")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}
