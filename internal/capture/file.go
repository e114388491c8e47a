package capture

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// ReadFile reads a capture from path. Captures can either be raw binary
// dumps or hex text as produced by `xxd -p` or copied off a test: check
// DecodeHex for the accepted syntax. A path of "-" reads from stdin.
func ReadFile(path string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading the capture: %w", err)
	}

	if !isHexText(raw) {
		return raw, nil
	}

	b, err := DecodeHex(string(raw))
	if err != nil {
		return nil, fmt.Errorf("error decoding the hex capture: %w", err)
	}
	return b, nil
}

// DecodeHex decodes hex text ignoring whitespace, '0x' prefixes and
// comments starting with either '#' or '//' and running until the end of
// the line.
func DecodeHex(s string) ([]byte, error) {
	var sb strings.Builder

	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 4096), len(s)+1)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.Fields(line) {
			field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
			sb.WriteString(field)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return hex.DecodeString(sb.String())
}

// isHexText reports whether raw looks like something DecodeHex can handle.
// Binary captures will almost always contain bytes outside of that range,
// starting with the zeroes in the upper bytes of the length field.
func isHexText(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	for _, c := range string(raw) {
		if c > unicode.MaxASCII || (!unicode.IsPrint(c) && !unicode.IsSpace(c)) {
			return false
		}
	}
	_, err := DecodeHex(string(raw))
	return err == nil
}
