package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Card data in JSON",
			input:  []byte(`{"name_on_card":"John Doe","card_number":"4111111111111111","cvv":"123","exp_month":"12"}`),
			output: []byte(`{"name_on_card":"[MASKED]","card_number":"[MASKED]","cvv":"[MASKED]","exp_month":"12"}`),
		},
		{
			name:   "Form-encoded login body",
			input:  []byte(`ctl00$MainContent$Email=a@b.com&ctl00$MainContent$Password=hunter2&ctl00$MainContent$LoginButton=Log+In`),
			output: []byte(`ctl00$MainContent$Email=a@b.com&ctl00$MainContent$Password=[MASKED]&ctl00$MainContent$LoginButton=Log+In`),
		},
		{
			name:   "Form-encoded checkout body",
			input:  []byte(`CardNumber=4111111111111111&CVV=123&BillingZip=94100`),
			output: []byte(`CardNumber=[MASKED]&CVV=[MASKED]&BillingZip=94100`),
		},
		{
			name:   "WebForms checkout body",
			input:  []byte(`ctl00$Checkout$txtCCNumber=4111111111111111&ctl00$Checkout$txtCVV=123&ctl00$Checkout$txtCCZip=94107`),
			output: []byte(`ctl00$Checkout$txtCCNumber=[MASKED]&ctl00$Checkout$txtCVV=[MASKED]&ctl00$Checkout$txtCCZip=94107`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
