// Package csvcodec implements the delimited-text dialect used by the
// import/export pipeline. It is deliberately more lenient than encoding/csv:
// the separator is configurable per call, a quote anywhere opens a quoted
// section, carriage returns outside quotes are ignored so both line-ending
// conventions work, and a trailing unterminated field or row at end of
// input is still emitted.
package csvcodec

import "strings"

// DefaultSeparator is used whenever a caller passes a zero separator.
const DefaultSeparator = ','

// Parse tokenizes delimited text into rows of string fields. Inside quotes
// a doubled quote is an escaped literal quote and any other quote closes
// the field; no type coercion happens at this layer.
func Parse(text string, sep rune) [][]string {
	if sep == 0 {
		sep = DefaultSeparator
	}

	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteRune(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case sep:
			row = append(row, field.String())
			field.Reset()
		case '\n':
			row = append(row, field.String())
			rows = append(rows, row)
			row = nil
			field.Reset()
		case '\r':
			// skipped outside quotes
		default:
			field.WriteRune(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}

	return rows
}

// Write serializes rows into delimited text. Any field containing the
// separator, a quote, a semicolon or a line break is wrapped in quotes with
// embedded quotes doubled, so Parse(Write(rows)) returns rows unchanged.
func Write(rows [][]string, sep rune) string {
	if sep == 0 {
		sep = DefaultSeparator
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}

		for j, field := range row {
			if j > 0 {
				b.WriteRune(sep)
			}
			b.WriteString(escape(field, sep))
		}
	}

	return b.String()
}

func escape(field string, sep rune) string {
	if strings.ContainsAny(field, string([]rune{sep, '"', ',', ';', '\n', '\r'})) {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}

	return field
}
