package ingest

import "strings"

// Table is the raw parsed form of an uploaded delimited-text export:
// the header row plus every data row that matched its width, in file order.
type Table struct {
	Headers []string
	Rows    [][]string
	Dropped int // linhas malformadas descartadas
}

const delimiter = ','

// Parse splits raw text into header + data rows.
// Exports in the wild are ragged and loosely quoted, so the rules are lax:
// empty lines are skipped, the first non-empty line is the header,
// a comma inside a double-quoted field does not split, and a data line with
// fewer fields than the header is dropped instead of failing the upload.
func Parse(raw string) Table {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return Table{}
	}

	headers := splitFields(lines[0])
	for i, h := range headers {
		headers[i] = unquote(strings.TrimSpace(h))
	}

	t := Table{Headers: headers}
	for _, line := range lines[1:] {
		row := splitFields(line)
		if len(row) < len(headers) {
			// linha malformada (export parcial): descarta e segue
			t.Dropped++
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Column returns the index of the first header containing any of the given
// substrings (case-insensitive), in header order. First match wins, even when
// several headers qualify; callers depend on that tie-break. Returns -1 when
// no header matches.
func (t Table) Column(substrings ...string) int {
	for i, h := range t.Headers {
		lower := strings.ToLower(h)
		for _, sub := range substrings {
			if strings.Contains(lower, strings.ToLower(sub)) {
				return i
			}
		}
	}
	return -1
}

// splitFields splits one line on the delimiter, counting quote parity so a
// delimiter inside an open "..." does not split the field.
func splitFields(line string) []string {
	var fields []string
	var sb strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == delimiter && !inQuote:
			fields = append(fields, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	fields = append(fields, sb.String())
	return fields
}

// unquote strips one pair of bounding double quotes. Escaped quotes inside
// quoted fields are out of scope for these exports.
func unquote(field string) string {
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		return field[1 : len(field)-1]
	}
	return field
}
