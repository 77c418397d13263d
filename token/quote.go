package token

import (
	"encoding/hex"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Quote renders v as a double-quoted string literal. Quote, backslash and
// control characters are escaped; everything else passes through verbatim.
func Quote(v string) string {
	return string(AppendQuoted(make([]byte, 0, len(v)+2), v, false))
}

// QuoteASCII is Quote with every rune above 0x7F escaped as \uXXXX,
// using surrogate pairs for runes outside the basic plane.
func QuoteASCII(v string) string {
	return string(AppendQuoted(make([]byte, 0, len(v)+2), v, true))
}

// AppendQuoted appends the quoted form of v to dst.
func AppendQuoted(dst []byte, v string, asciiOnly bool) []byte {
	dst = append(dst, '"')
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	esc := func(d []byte, r rune) []byte {
		ucs[0] = byte(r >> 8)
		ucs[1] = byte(r)
		cps = hex.AppendEncode(cps[:0], ucs)
		return append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
	}
	for _, r := range v {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			switch {
			case unicode.IsControl(r):
				dst = esc(dst, r)
			case asciiOnly && r > unicode.MaxASCII:
				if r > 0xFFFF {
					hi, lo := utf16.EncodeRune(r)
					dst = esc(dst, hi)
					dst = esc(dst, lo)
					break
				}
				dst = esc(dst, r)
			default:
				dst = utf8.AppendRune(dst, r)
			}
		}
	}
	return append(dst, '"')
}
