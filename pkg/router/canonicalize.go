package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidPath is the sentinel every canonicalization rejection
// wraps; errors.Is(err, ErrInvalidPath) matches any of them.
var ErrInvalidPath = errors.New("invalid path")

// Specific canonicalization rejections.
var (
	ErrBackslashInPath      = fmt.Errorf("%w: contains backslash", ErrInvalidPath)
	ErrNullByteInPath       = fmt.Errorf("%w: contains null byte", ErrInvalidPath)
	ErrInvalidPercentEscape = fmt.Errorf("%w: bad percent escape sequence", ErrInvalidPath)
	ErrPathEscapesRoot      = fmt.Errorf("%w: escapes root via ..", ErrInvalidPath)
	ErrEncodedSlashInParam  = fmt.Errorf("%w: encoded slash (%%2F) in parameter segment", ErrInvalidPath)
)

// CanonicalizePath normalizes a navigation path:
//   - remove the trailing slash (except for root "/")
//   - collapse repeated slashes (/todos//7 → /todos/7)
//   - drop "." segments and resolve ".." segments
//
// Paths containing a backslash, a NUL byte, an invalid percent escape,
// or a ".." that would climb above root are rejected. A query string is
// split off and preserved verbatim.
func CanonicalizePath(input string) (path, query string, err error) {
	if input == "" {
		return "/", "", nil
	}

	path, query, _ = strings.Cut(input, "?")

	if strings.Contains(path, "\\") {
		return "", "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", "", ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return "", "", err
		}
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				return "", "", ErrPathEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}

	path = "/" + strings.Join(kept, "/")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path, query, nil
}

// validatePercentEscapes checks that every %XX escape carries two hex
// digits.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); {
		if path[i] != '%' {
			i++
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 3
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// decodeSegment decodes one path segment. Parameter segments reject an
// encoded slash, which would smuggle extra path structure into a single
// parameter; catch-all segments keep slashes.
func decodeSegment(segment string, catchAll bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if !catchAll && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInParam
	}
	return decoded, nil
}
