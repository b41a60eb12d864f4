package entity

import "time"

// OutcomeKind classifies how a reservation attempt ended.
type OutcomeKind string

const (
	OutcomeSuccess                  OutcomeKind = "Success"
	OutcomeAwaitingManualSubmit     OutcomeKind = "AwaitingManualSubmit"
	OutcomeNoEligibleProduct        OutcomeKind = "NoEligibleProduct"
	OutcomeCheckoutNavigationFailed OutcomeKind = "CheckoutNavigationFailed"
	OutcomeCartSoldOutPersists      OutcomeKind = "CartSoldOutPersists"
	OutcomeSubmitFailed             OutcomeKind = "SubmitFailed"
	OutcomeSessionError             OutcomeKind = "SessionError"
	OutcomeCancelled                OutcomeKind = "Cancelled"
)

// Terminal reports whether the monitor loop must stop on this outcome.
// AwaitingManualSubmit is terminal too: the cart is filled and a human is
// expected to finish checkout, re-running would clobber it.
func (k OutcomeKind) Terminal() bool {
	switch k {
	case OutcomeSuccess, OutcomeAwaitingManualSubmit, OutcomeSessionError, OutcomeCancelled:
		return true
	default:
		return false
	}
}

// Outcome is the terminal record of one reservation attempt.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Keyword string      `json:"keyword,omitempty"`
	Title   string      `json:"title,omitempty"`
	Total   string      `json:"total,omitempty"`
	Warning string      `json:"warning,omitempty"`
	At      time.Time   `json:"at"`
}
