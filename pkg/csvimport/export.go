package csvimport

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/oyaguma3/lte-nms/pkg/model"
)

// WriteCSV は加入者をテンプレート形式のCSVとして書き込む。
// 出力はParseでそのまま再取り込みできる。
func WriteCSV(w io.Writer, subscribers []*model.Subscriber) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Template); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, sub := range subscribers {
		if err := writer.Write(toRecord(sub)); err != nil {
			return fmt.Errorf("failed to write record for %s: %w", sub.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func toRecord(sub *model.Subscriber) []string {
	record := []string{sub.IMSI(), "", "", "", "", strings.Join(sub.ActiveAPNs, APNSeparator)}
	if sub.LTE != nil {
		record[1] = string(sub.LTE.State)
		record[2] = hex.EncodeToString(sub.LTE.AuthKey)
		record[3] = hex.EncodeToString(sub.LTE.AuthOPc)
		record[4] = sub.LTE.SubProfile
	}
	return record
}
