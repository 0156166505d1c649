package csvimport

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/oyaguma3/lte-nms/pkg/model"
)

const (
	testHeader = "imsi,lte_state,lte_auth_key,lte_auth_opc,sub_profile,active_apns"
	validKey   = "465b5ce8b199b49faa5f0a2ee238a6bc"
	validOPc   = "cd63cb71954a9f4e48a5994e37a02baf"
)

// csvText はヘッダーと行を指定の改行コードで連結する。
func csvText(newline string, rows ...string) []byte {
	lines := append([]string{testHeader}, rows...)
	return []byte(strings.Join(lines, newline) + newline)
}

func validRow(imsi string) string {
	return fmt.Sprintf("%s,ACTIVE,%s,%s,default,internet;ims", imsi, validKey, validOPc)
}

func TestParse_Valid(t *testing.T) {
	data := csvText(NewlineLF,
		validRow("001010000000001"),
		"001010000000002,INACTIVE,"+strings.ToUpper(validKey)+",,,",
	)

	res, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Newline != NewlineLF {
		t.Errorf("Newline = %q, want LF", res.Newline)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(res.Rows))
	}

	first := res.Rows[0]
	if first.Line != 2 {
		t.Errorf("Line = %d, want 2", first.Line)
	}
	if first.Subscriber.ID != "IMSI001010000000001" {
		t.Errorf("ID = %q", first.Subscriber.ID)
	}
	if got := first.Subscriber.ActiveAPNs; len(got) != 2 || got[0] != "internet" || got[1] != "ims" {
		t.Errorf("ActiveAPNs = %v", got)
	}
	if len(first.Subscriber.LTE.AuthOPc) != 16 {
		t.Errorf("AuthOPc length = %d, want 16", len(first.Subscriber.LTE.AuthOPc))
	}

	second := res.Rows[1].Subscriber
	if second.State() != model.StateInactive {
		t.Errorf("State = %q", second.State())
	}
	if second.LTE.SubProfile != model.DefaultSubProfile {
		t.Errorf("SubProfile = %q, want default", second.LTE.SubProfile)
	}
	if second.LTE.AuthOPc != nil {
		t.Errorf("AuthOPc = %x, want nil", second.LTE.AuthOPc)
	}
	if len(second.ActiveAPNs) != 0 {
		t.Errorf("ActiveAPNs = %v, want empty", second.ActiveAPNs)
	}
}

func TestParse_CRLF(t *testing.T) {
	res, err := Parse(csvText(NewlineCRLF, validRow("001010000000001")))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Newline != NewlineCRLF {
		t.Errorf("Newline = %q, want CRLF", res.Newline)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(res.Rows))
	}
	if apns := res.Rows[0].Subscriber.ActiveAPNs; apns[len(apns)-1] != "ims" {
		t.Errorf("last APN = %q, CR should not leak into values", apns[len(apns)-1])
	}
}

func TestParse_MixedNewlines(t *testing.T) {
	data := []byte(testHeader + "\r\n" + validRow("001010000000001") + "\n" + validRow("001010000000002") + "\r\n")

	res, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Newline != NewlineCRLF {
		t.Errorf("Newline = %q, want CRLF", res.Newline)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(res.Rows))
	}
	for i, want := range []string{"IMSI001010000000001", "IMSI001010000000002"} {
		if got := res.Rows[i].Subscriber.ID; got != want {
			t.Errorf("Rows[%d].ID = %q, want %q", i, got, want)
		}
		if got := res.Rows[i].Line; got != i+2 {
			t.Errorf("Rows[%d].Line = %d, want %d", i, got, i+2)
		}
	}
}

func TestParse_MixedNewlinesCountTowardRowLimit(t *testing.T) {
	rows := make([]string, MaxUploadRows+1)
	for i := range rows {
		rows[i] = validRow(fmt.Sprintf("0010100%08d", i))
	}
	// 先頭行のみCRLF、以降はLF
	data := []byte(testHeader + "\r\n" + strings.Join(rows, "\n") + "\n")

	if _, err := Parse(data); !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("Parse() error = %v, want %v", err, ErrTooManyRows)
	}
}

func TestParse_NoTrailingNewline(t *testing.T) {
	data := []byte(testHeader + "\n" + validRow("001010000000001"))
	res, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1", len(res.Rows))
	}
}

func TestParse_BOMHeader(t *testing.T) {
	data := append([]byte("\ufeff"), csvText(NewlineLF, validRow("001010000000001"))...)
	if _, err := Parse(data); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	res, err := Parse(csvText(NewlineLF))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Rows) != 0 {
		t.Errorf("len(Rows) = %d, want 0", len(res.Rows))
	}
}

func TestParse_StructuralErrors(t *testing.T) {
	tooMany := make([]string, MaxUploadRows+1)
	for i := range tooMany {
		tooMany[i] = validRow(fmt.Sprintf("0010100%08d", i))
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"binary NUL", []byte("imsi\x00,lte_state"), ErrNotTextFile},
		{"invalid utf8", []byte{0xff, 0xfe, 0x41}, ErrNotTextFile},
		{"empty", []byte(""), ErrEmptyFile},
		{"whitespace only", []byte(" \n\r\n"), ErrEmptyFile},
		{"header reordered", []byte("lte_state,imsi,lte_auth_key,lte_auth_opc,sub_profile,active_apns\n" + validRow("001010000000001")), ErrHeaderMismatch},
		{"header upper case", []byte(strings.ToUpper(testHeader) + "\n"), ErrHeaderMismatch},
		{"header padded", []byte(" imsi , lte_state,lte_auth_key,lte_auth_opc,sub_profile,active_apns\n" + validRow("001010000000001")), ErrHeaderMismatch},
		{"header trailing space", []byte(testHeader + " \n" + validRow("001010000000001")), ErrHeaderMismatch},
		{"header missing column", []byte("imsi,lte_state,lte_auth_key,lte_auth_opc,sub_profile\n"), ErrHeaderMismatch},
		{"too many rows", csvText(NewlineLF, tooMany...), ErrTooManyRows},
		{"missing imsi", csvText(NewlineLF, ",ACTIVE,"+validKey+",,,"), ErrIncompleteRow},
		{"missing key", csvText(NewlineLF, "001010000000001,ACTIVE,,,,"), ErrIncompleteRow},
		{"bad state", csvText(NewlineLF, "001010000000001,SUSPENDED,"+validKey+",,,"), ErrIncompleteRow},
		{"lower case state", csvText(NewlineLF, "001010000000001,active,"+validKey+",,,"), ErrIncompleteRow},
		{"short row", csvText(NewlineLF, "001010000000001,ACTIVE,"+validKey), ErrIncompleteRow},
		{"blank line in middle", csvText(NewlineLF, validRow("001010000000001"), "", validRow("001010000000002")), ErrIncompleteRow},
		{"short key", csvText(NewlineLF, "001010000000001,ACTIVE,0011,,,"), ErrInvalidKey},
		{"non hex opc", csvText(NewlineLF, "001010000000001,ACTIVE,"+validKey+",zz63cb71954a9f4e48a5994e37a02baf,,"), ErrInvalidKey},
		{"non digit imsi", csvText(NewlineLF, "00101abc0000001,ACTIVE,"+validKey+",,,"), ErrInvalidIMSI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("Parse() should not return partial results")
			}
			if !IsStructural(err) {
				t.Errorf("IsStructural(%v) = false", err)
			}
		})
	}
}

func TestParse_RowErrorLine(t *testing.T) {
	_, err := Parse(csvText(NewlineLF, validRow("001010000000001"), "001010000000002,ACTIVE,,,,"))

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowError, got %T: %v", err, err)
	}
	if rowErr.Line != 3 {
		t.Errorf("Line = %d, want 3", rowErr.Line)
	}
	if rowErr.Column != ColumnAuthKey {
		t.Errorf("Column = %q, want %q", rowErr.Column, ColumnAuthKey)
	}
}

func TestHeaderError_Message(t *testing.T) {
	err := &HeaderError{Got: []string{"imsi", "ki"}}
	if !strings.Contains(err.Error(), `got "imsi,ki"`) {
		t.Errorf("Error() = %q", err.Error())
	}
	if !strings.Contains(err.Error(), testHeader) {
		t.Errorf("Error() should name the expected header: %q", err.Error())
	}
}

func TestDetectNewline(t *testing.T) {
	if DetectNewline("a\r\nb") != NewlineCRLF {
		t.Error("expected CRLF")
	}
	if DetectNewline("a\nb") != NewlineLF {
		t.Error("expected LF")
	}
	if DetectNewline("a") != NewlineLF {
		t.Error("expected LF for single line")
	}
}

func TestIsStructural_NetworkError(t *testing.T) {
	if IsStructural(errors.New("connection refused")) {
		t.Error("network errors are not structural")
	}
}
