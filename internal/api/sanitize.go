package api

import "bytes"

// sanitizeJSON replaces bare NaN, Infinity and -Infinity tokens with
// null so the body decodes with encoding/json. Python's json encoder
// emits these literals for non-finite floats even though they are not
// valid JSON. Occurrences inside string values are left untouched.
func sanitizeJSON(b []byte) []byte {
	if !bytes.Contains(b, []byte("NaN")) && !bytes.Contains(b, []byte("Infinity")) {
		return b
	}

	out := make([]byte, 0, len(b))
	inString := false
	for i := 0; i < len(b); {
		c := b[i]
		if inString {
			if c == '\\' && i+1 < len(b) {
				out = append(out, c, b[i+1])
				i += 2
				continue
			}
			if c == '"' {
				inString = false
			}
			out = append(out, c)
			i++
			continue
		}
		switch {
		case c == '"':
			inString = true
			out = append(out, c)
			i++
		case tokenAt(b, i, "-Infinity"):
			out = append(out, "null"...)
			i += len("-Infinity")
		case tokenAt(b, i, "Infinity"):
			out = append(out, "null"...)
			i += len("Infinity")
		case tokenAt(b, i, "NaN"):
			out = append(out, "null"...)
			i += len("NaN")
		default:
			out = append(out, c)
			i++
		}
	}
	return out
}

func tokenAt(b []byte, i int, tok string) bool {
	return len(b)-i >= len(tok) && string(b[i:i+len(tok)]) == tok
}
