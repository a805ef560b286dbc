package grouping

import (
	"bytes"
	"errors"
	"strings"
)

// ExportFilename is the download name for an exported partition.
const ExportFilename = "分組結果.csv"

// ExportContentType is the MIME type of ExportCSV output.
const ExportContentType = "text/csv; charset=utf-8"

var ErrNothingToExport = errors.New("no groups to export")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV renders groups as CSV with a UTF-8 byte order mark so Excel
// picks the right encoding. Each row is the group label and its members
// joined by ", " in one quoted field.
func ExportCSV(groups [][]string) ([]byte, error) {
	if len(groups) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString("組別,成員\n")
	for i, group := range groups {
		buf.WriteString(Label(i))
		buf.WriteByte(',')
		buf.WriteString(quote(strings.Join(group, ", ")))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
