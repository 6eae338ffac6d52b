// Package encoding guards file loads against non-UTF-8 and binary input.
//
// The file format is UTF-8 text only (no transcoding, no BOM handling);
// this package's only job is detecting when incoming bytes are NOT that,
// so a load can fail cleanly instead of corrupting a document. It keeps
// the same chardet-backed detection machinery a multi-encoding editor
// would carry, narrowed to a single guard call.
package encoding

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}
var utf16LEBOM = []byte{0xFF, 0xFE}
var utf16BEBOM = []byte{0xFE, 0xFF}

// Detection reports what GuardUTF8 found when bytes failed the guard.
type Detection struct {
	Charset    string
	Confidence int
	HasBOM     bool
}

func (d Detection) String() string {
	if d.HasBOM {
		return fmt.Sprintf("detected %s (BOM present)", d.Charset)
	}
	return fmt.Sprintf("detected %s (%d%% confidence)", d.Charset, d.Confidence)
}

// GuardUTF8 returns an error if data is not valid UTF-8 text, describing
// the encoding chardet believes the bytes actually are. A UTF-8 BOM is
// treated as a rejection too: the file format preserves bytes exactly and
// adds or strips no BOM, so a file carrying one is not in the format this
// core accepts.
func GuardUTF8(data []byte) error {
	if bytes.HasPrefix(data, utf8BOM) {
		return fmt.Errorf("%s", Detection{Charset: "UTF-8 BOM", HasBOM: true})
	}
	if bytes.HasPrefix(data, utf16LEBOM) {
		return fmt.Errorf("%s", Detection{Charset: "UTF-16 LE", HasBOM: true})
	}
	if bytes.HasPrefix(data, utf16BEBOM) {
		return fmt.Errorf("%s", Detection{Charset: "UTF-16 BE", HasBOM: true})
	}
	if utf8.Valid(data) {
		return nil
	}

	detector := chardet.NewTextDetector()
	detected, err := detector.DetectBest(data)
	if err != nil || detected == nil {
		return fmt.Errorf("%s", Detection{Charset: "unknown binary or non-UTF-8 data", Confidence: 0})
	}
	return fmt.Errorf("%s", Detection{Charset: detected.Charset, Confidence: detected.Confidence})
}
