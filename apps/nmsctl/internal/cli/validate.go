package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oyaguma3/lte-nms/pkg/csvimport"
)

func newValidateCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a subscriber CSV file without contacting the orchestrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d row(s), %s line endings\n",
				args[0], len(parsed.Rows), newlineName(parsed.Newline))
			return nil
		},
	}
}

// parseFile はファイルを読み込んで全行を検証する。
func parseFile(path string) (*csvimport.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	parsed, err := csvimport.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

func newlineName(newline string) string {
	if newline == csvimport.NewlineCRLF {
		return "CRLF"
	}
	return "LF"
}
