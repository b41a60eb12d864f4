package value

import "strings"

// PaymentDetails holds the checkout form fields. The card number and CVV
// must never reach logs or events unmasked, use Masked for any output.
type PaymentDetails struct {
	NameOnCard        string `json:"name_on_card" yaml:"name_on_card"`
	CardNumber        string `json:"card_number" yaml:"card_number"`
	CVV               string `json:"cvv" yaml:"cvv"`
	ExpMonth          string `json:"exp_month" yaml:"exp_month"`
	ExpYear           string `json:"exp_year" yaml:"exp_year"`
	BillingZip        string `json:"billing_zip" yaml:"billing_zip"`
	ConfirmationEmail string `json:"confirmation_email" yaml:"confirmation_email"`
}

// Complete reports whether every field needed to pass checkout validation is
// present. The check is advisory, the storefront has the final say.
func (p PaymentDetails) Complete() bool {
	for _, field := range []string{
		p.NameOnCard,
		p.CardNumber,
		p.CVV,
		p.ExpMonth,
		p.ExpYear,
		p.BillingZip,
		p.ConfirmationEmail,
	} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}

	return true
}

// MissingFields names the empty fields for diagnostics.
func (p PaymentDetails) MissingFields() []string {
	named := []struct {
		name  string
		value string
	}{
		{"name_on_card", p.NameOnCard},
		{"card_number", p.CardNumber},
		{"cvv", p.CVV},
		{"exp_month", p.ExpMonth},
		{"exp_year", p.ExpYear},
		{"billing_zip", p.BillingZip},
		{"confirmation_email", p.ConfirmationEmail},
	}

	var missing []string

	for _, f := range named {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	return missing
}

// Masked returns the card number reduced to its last four digits, the form
// used in events and logs.
func (p PaymentDetails) Masked() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p.CardNumber)

	const visible = 4

	if len(digits) <= visible {
		return "****"
	}

	return "****" + digits[len(digits)-visible:]
}
