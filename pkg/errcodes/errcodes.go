package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Acquisition pipeline codes, ordered roughly by the stage they can
	// surface at.
	ProductNotFound          failure.ErrorCode = "ProductNotFound"
	ProductSoldOut           failure.ErrorCode = "ProductSoldOut"
	AddToCartFailed          failure.ErrorCode = "AddToCartFailed"
	CheckoutNavigationFailed failure.ErrorCode = "CheckoutNavigationFailed"
	CartSoldOutPersists      failure.ErrorCode = "CartSoldOutPersists"
	PaymentFormIncomplete    failure.ErrorCode = "PaymentFormIncomplete"
	SubmitFailed             failure.ErrorCode = "SubmitFailed"
	SessionError             failure.ErrorCode = "SessionError"

	// Control surface codes.
	RunNotFound       failure.ErrorCode = "RunNotFound"
	RunAlreadyActive  failure.ErrorCode = "RunAlreadyActive"
	RunNotActive      failure.ErrorCode = "RunNotActive"
	InvalidRunRequest failure.ErrorCode = "InvalidRunRequest"
)
