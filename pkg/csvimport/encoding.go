package csvimport

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/oyaguma3/lte-nms/pkg/validation"
)

// HexToBase64 は16進数表記の鍵をオーケストレータが扱うbase64表記に変換する。
func HexToBase64(h string) (string, error) {
	b, err := decodeHexKey(h)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Base64ToHex はbase64表記の鍵を小文字の16進数表記に変換する。
func Base64ToHex(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return hex.EncodeToString(b), nil
}

// decodeHexKey は32桁の16進数を16バイトに変換する。
func decodeHexKey(h string) ([]byte, error) {
	b, ok := validation.DecodeHexKey(strings.TrimSpace(h))
	if !ok {
		return nil, ErrInvalidKey
	}
	return b, nil
}
