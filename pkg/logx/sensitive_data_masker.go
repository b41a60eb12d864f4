package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// JSON fields.
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
	regexp.MustCompile(`(?s)("email":\s?").+?(")`),
	regexp.MustCompile(`(?s)("card_number":\s?").+?(")`),
	regexp.MustCompile(`(?s)("cvv":\s?").+?(")`),
	regexp.MustCompile(`(?s)("name_on_card":\s?").+?(")`),
	// Form-encoded checkout and login bodies. WebForms prefixes field names
	// with the container chain (ctl00$Checkout$txtCCNumber), so only the
	// suffix is matched.
	regexp.MustCompile(`(?i)([\w$.]*password=)[^&\r\n]*`),
	regexp.MustCompile(`(?i)([\w$.]*card_?number=)[^&\r\n]*`),
	regexp.MustCompile(`(?i)([\w$.]*cc_?number=)[^&\r\n]*`),
	regexp.MustCompile(`(?i)([\w$.]*cvv=)[^&\r\n]*`),
	regexp.MustCompile(`(?i)([\w$.]*name_?on_?card=)[^&\r\n]*`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
