package router

import "strings"

// BuildPath expands a pattern with parameter values, producing a
// navigable path. Every :param and *rest in the pattern must be present
// in params.
func BuildPath(pattern string, params map[string]string) (string, error) {
	segs, err := parsePattern(pattern)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if len(segs) == 0 {
		return "/", nil
	}
	for _, seg := range segs {
		b.WriteByte('/')
		switch seg.kind {
		case segLiteral:
			b.WriteString(seg.name)
		default:
			val, ok := params[seg.name]
			if !ok || val == "" {
				return "", ErrMissingParam
			}
			b.WriteString(val)
		}
	}
	return b.String(), nil
}
