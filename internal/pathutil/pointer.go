package pathutil

import "strings"

var (
	fragmentEncoder = strings.NewReplacer("~", "~0", "/", "~1")
	fragmentDecoder = strings.NewReplacer("~1", "/", "~0", "~")
)

// EncodeFragment escapes a single JSON Pointer reference token.
func EncodeFragment(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return fragmentEncoder.Replace(token)
}

// DecodeFragment reverses EncodeFragment.
func DecodeFragment(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return fragmentDecoder.Replace(token)
}

// Split returns the decoded reference tokens of a JSON Pointer. A leading
// "#" (URI fragment form) is accepted. The root pointer yields no tokens.
func Split(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" || pointer == "/" {
		return nil
	}
	pointer = strings.TrimPrefix(pointer, "/")
	parts := strings.Split(pointer, "/")
	for i, p := range parts {
		parts[i] = DecodeFragment(p)
	}
	return parts
}

// Join builds an encoded JSON Pointer from decoded tokens.
func Join(tokens ...string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EncodeFragment(t))
	}
	return b.String()
}
