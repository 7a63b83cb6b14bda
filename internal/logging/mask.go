package logging

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// MaskChar is the character used for masking.
	MaskChar = "*"
	// URLMaskLength is how many characters to show before masking URLs.
	URLMaskLength = 30
	// DefaultMaskLength is how many mask characters to show.
	DefaultMaskLength = 3
)

// SensitiveFields contains field names that should be masked.
var SensitiveFields = map[string]bool{
	"token":          true,
	"secret":         true,
	"password":       true,
	"key":            true,
	"api_key":        true,
	"apikey":         true,
	"access_token":   true,
	"refresh_token":  true,
	"auth":           true,
	"authorization":  true,
	"bearer":         true,
	"credential":     true,
	"credentials":    true,
	"private":        true,
	"private_key":    true,
	"cookie":         true,
}

// urlPattern matches HTTP(S) URLs.
var urlPattern = regexp.MustCompile(`https?://[^\s"']+`)

// MaskURL masks a URL, showing only the first URLMaskLength characters.
func MaskURL(url string) string {
	if len(url) <= URLMaskLength {
		return url
	}
	return url[:URLMaskLength] + strings.Repeat(MaskChar, DefaultMaskLength)
}

// MaskValue masks a sensitive value completely.
func MaskValue(value string) string {
	if value == "" {
		return ""
	}
	return strings.Repeat(MaskChar, min(len(value), 8))
}

// IsSensitiveField checks if a field name indicates sensitive data.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)

	// Check exact match
	if SensitiveFields[lower] {
		return true
	}

	// Check if contains sensitive keywords
	for keyword := range SensitiveFields {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// MaskString scans a string for sensitive patterns and masks them.
func MaskString(s string) string {
	// Mask URLs
	s = urlPattern.ReplaceAllStringFunc(s, func(url string) string {
		// Don't mask localhost URLs
		if strings.Contains(url, "localhost") || strings.Contains(url, "127.0.0.1") {
			return url
		}
		return MaskURL(url)
	})

	return s
}

// MaskArgs masks sensitive values in a slice of logging arguments.
// Arguments are expected in key-value pairs: key1, value1, key2, value2, ...
func MaskArgs(args []any) []any {
	if len(args) < 2 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}

		if IsSensitiveField(key) {
			if strVal, ok := result[i+1].(string); ok {
				result[i+1] = MaskValue(strVal)
			} else {
				result[i+1] = strings.Repeat(MaskChar, 8)
			}
		}
	}

	return result
}

// RedactURL strips user info and sensitive query parameters from a URL so it
// can be logged. Unparseable input is masked with MaskURL.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return MaskURL(raw)
	}
	if u.User != nil {
		u.User = url.User(MaskValue(u.User.Username()))
	}
	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if IsSensitiveField(key) {
				q.Set(key, MaskValue(q.Get(key)))
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}
