package lexer

import (
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrBadEscape = errors.New("invalid escape sequence")

// Unquote decodes the text of a StringLit token and returns the value in
// Unicode normal form C.
func Unquote(text string) (string, error) {
	if len(text) < 2 {
		return "", ErrBadEscape
	}
	body := text[1 : len(text)-1]
	if !strings.ContainsRune(body, '\\') {
		return norm.NFC.String(body), nil
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", ErrBadEscape
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\', '"', '\'':
			sb.WriteByte(body[i])
		case '\n':
		case 'x':
			if i+3 > len(body) {
				return "", ErrBadEscape
			}
			b, err := hex.DecodeString(body[i+1 : i+3])
			if err != nil {
				return "", ErrBadEscape
			}
			sb.Write(b)
			i += 2
		case 'u':
			if i+5 > len(body) {
				return "", ErrBadEscape
			}
			r, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return "", ErrBadEscape
			}
			sb.WriteRune(rune(r))
			i += 4
		default:
			return "", ErrBadEscape
		}
	}
	return norm.NFC.String(sb.String()), nil
}

// UnquoteHex decodes the text of a HexStrLit token.
func UnquoteHex(text string) ([]byte, error) {
	body := strings.ReplaceAll(text[4:len(text)-1], "_", "")
	return hex.DecodeString(body)
}
