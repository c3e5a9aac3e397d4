package http

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
)

const masked = "***MASKED***"

// CredentialMasker hides credentials in logged headers, URLs and bodies
type CredentialMasker interface {
	// MaskString masks sensitive information in a string
	MaskString(s string) string

	// MaskHeaders masks sensitive information in HTTP headers
	MaskHeaders(headers http.Header) map[string][]string
}

// DefaultMasker masks well-known credential headers and key-shaped values
type DefaultMasker struct {
	patterns         []maskPattern
	sensitiveHeaders map[string]bool
}

type maskPattern struct {
	pattern     *regexp.Regexp
	replacement string
}

// DefaultCredentialMasker creates a masker with the default header list and
// patterns for bearer tokens, api keys and query-string secrets.
func DefaultCredentialMasker() *DefaultMasker {
	m := &DefaultMasker{
		sensitiveHeaders: map[string]bool{
			"authorization":       true,
			"proxy-authorization": true,
			"x-api-key":           true,
			"api-key":             true,
			"x-goog-api-key":      true,
			"cookie":              true,
			"set-cookie":          true,
		},
	}

	m.AddPattern(regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-_\.~+/]+=*`), "Bearer "+masked)
	m.AddPattern(regexp.MustCompile(`([?&](?:key|api[_-]?key|access_token|token))=[^&\s]+`), "$1="+masked)
	m.AddPattern(regexp.MustCompile(`("(?:api[_-]?key|apikey|access[_-]?token|private_key|client_secret)"\s*:\s*)"[^"]*"`), `$1"`+masked+`"`)
	m.AddPattern(regexp.MustCompile(`\bsk-[A-Za-z0-9\-_]{16,}`), masked)
	return m
}

// AddPattern adds a custom masking pattern
func (m *DefaultMasker) AddPattern(pattern *regexp.Regexp, replacement string) {
	m.patterns = append(m.patterns, maskPattern{pattern: pattern, replacement: replacement})
}

// AddSensitiveHeader adds a header whose values are always fully masked
func (m *DefaultMasker) AddSensitiveHeader(name string) {
	m.sensitiveHeaders[strings.ToLower(name)] = true
}

// MaskString masks sensitive information in a string
func (m *DefaultMasker) MaskString(s string) string {
	for _, p := range m.patterns {
		s = p.pattern.ReplaceAllString(s, p.replacement)
	}
	return s
}

// MaskHeaders masks sensitive information in HTTP headers
func (m *DefaultMasker) MaskHeaders(headers http.Header) map[string][]string {
	out := make(map[string][]string, len(headers))
	for key, values := range headers {
		maskedValues := make([]string, len(values))
		sensitive := m.sensitiveHeaders[strings.ToLower(key)]
		for i, v := range values {
			if sensitive {
				maskedValues[i] = masked
			} else {
				maskedValues[i] = m.MaskString(v)
			}
		}
		out[key] = maskedValues
	}
	return out
}

// MaskSecret keeps the first and last two characters of a secret so
// operators can tell keys apart without exposing them.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return masked
	}
	return secret[:2] + "..." + secret[len(secret)-2:]
}

// formatHeaders renders headers in a stable order for log output
func formatHeaders(headers map[string][]string) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(headers[k], ", "))
	}
	return sb.String()
}
