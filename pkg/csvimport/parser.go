package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/oyaguma3/lte-nms/pkg/validation"
)

// utf8BOM はExcel等が付与するUTF-8のバイトオーダーマーク
const utf8BOM = "\ufeff"

var errMultipleRecords = errors.New("line holds more than one record")

// Row は検証済みの1データ行
type Row struct {
	Line       int
	Subscriber *model.Subscriber
}

// ParseResult はパース結果
type ParseResult struct {
	// Newline は検出した改行コード（NewlineCRLF または NewlineLF）
	Newline string
	Rows    []Row
}

// Subscribers は行順の加入者一覧を返す。
func (r *ParseResult) Subscribers() []*model.Subscriber {
	subs := make([]*model.Subscriber, 0, len(r.Rows))
	for _, row := range r.Rows {
		subs = append(subs, row.Subscriber)
	}
	return subs
}

// Parse は加入者CSVをパースし、全行を検証する。
// 1行でも不正があればバッチ全体をエラーとし、部分的な結果は返さない。
func Parse(data []byte) (*ParseResult, error) {
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, ErrNotTextFile
	}

	text := strings.TrimPrefix(string(data), utf8BOM)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyFile
	}

	newline := DetectNewline(text)
	// 改行コードが混在しても1行ずつ分割し、行末のCRは列値に含めない
	lines := strings.Split(text, NewlineLF)
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	header, err := readRecord(lines[0])
	if err != nil || !matchTemplate(header) {
		return nil, &HeaderError{Got: header}
	}

	body := lines[1:]
	if len(body) > MaxUploadRows {
		return nil, fmt.Errorf("%w (got %d)", ErrTooManyRows, len(body))
	}

	rows := make([]Row, 0, len(body))
	for i, line := range body {
		lineNum := i + 2
		record, err := readRecord(line)
		if err != nil {
			return nil, &RowError{Line: lineNum, Err: fmt.Errorf("%w: %v", ErrIncompleteRow, err)}
		}
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
		sub, err := mapRecord(record, lineNum)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Line: lineNum, Subscriber: sub})
	}

	return &ParseResult{Newline: newline, Rows: rows}, nil
}

// DetectNewline はテキストの改行コードを判定する。CRLFを含めばCRLFとする。
func DetectNewline(text string) string {
	if strings.Contains(text, NewlineCRLF) {
		return NewlineCRLF
	}
	return NewlineLF
}

// readRecord は1行をCSVレコードとして読み込む。空行はnilを返す。
// セル値はそのまま返す。1行に複数レコードが含まれる場合はエラーとする。
func readRecord(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	record, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if _, err := reader.Read(); err != io.EOF {
		return nil, errMultipleRecords
	}
	return record, nil
}

func matchTemplate(header []string) bool {
	if len(header) != len(Template) {
		return false
	}
	for i, col := range Template {
		if header[i] != col {
			return false
		}
	}
	return true
}

// mapRecord はレコードを加入者に変換する。
func mapRecord(record []string, lineNum int) (*model.Subscriber, error) {
	if len(record) != len(Template) {
		return nil, &RowError{
			Line: lineNum,
			Err:  fmt.Errorf("%w: expected %d columns, got %d", ErrIncompleteRow, len(Template), len(record)),
		}
	}

	imsi := model.IMSIFromID(record[0])
	state := model.SubscriberState(record[1])
	keyHex := record[2]
	opcHex := record[3]

	switch {
	case imsi == "":
		return nil, &RowError{Line: lineNum, Column: ColumnIMSI, Err: ErrIncompleteRow}
	case keyHex == "":
		return nil, &RowError{Line: lineNum, Column: ColumnAuthKey, Err: ErrIncompleteRow}
	case !state.Valid():
		return nil, &RowError{
			Line:   lineNum,
			Column: ColumnLTEState,
			Err:    fmt.Errorf("%w: state must be %s or %s, got %q", ErrIncompleteRow, model.StateActive, model.StateInactive, record[1]),
		}
	}

	if !validation.IMSIPattern.MatchString(imsi) {
		return nil, &RowError{Line: lineNum, Column: ColumnIMSI, Err: ErrInvalidIMSI}
	}

	key, err := decodeHexKey(keyHex)
	if err != nil {
		return nil, &RowError{Line: lineNum, Column: ColumnAuthKey, Err: err}
	}

	var opc []byte
	if opcHex != "" {
		opc, err = decodeHexKey(opcHex)
		if err != nil {
			return nil, &RowError{Line: lineNum, Column: ColumnAuthOPc, Err: err}
		}
	}

	return model.NewSubscriber(imsi, state, key, opc, record[4], splitAPNs(record[5])), nil
}

// splitAPNs はactive_apns列を分割する。空要素は除外する。
func splitAPNs(s string) []string {
	apns := []string{}
	for _, apn := range strings.Split(s, APNSeparator) {
		if apn = strings.TrimSpace(apn); apn != "" {
			apns = append(apns, apn)
		}
	}
	return apns
}
