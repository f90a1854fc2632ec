// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Planning errors
	CodeInvalidTransition    Code = "INVALID_TRANSITION"
	CodeOwnershipMismatch    Code = "OWNERSHIP_MISMATCH"
	CodeUnsupportedOperation Code = "UNSUPPORTED_OPERATION"

	// Fulfillment errors
	CodeNotApproved Code = "NOT_APPROVED"

	// Item validation errors
	CodeItemNameEmpty          Code = "ITEM_NAME_EMPTY"
	CodeItemPriceNegative      Code = "ITEM_PRICE_NEGATIVE"
	CodeItemQuantityInvalid    Code = "ITEM_QUANTITY_INVALID"
	CodeItemOwnerInvalid       Code = "ITEM_OWNER_INVALID"
	CodeServiceInvalidCategory Code = "SERVICE_INVALID_CATEGORY"
	CodeProjectIDEmpty         Code = "PROJECT_ID_EMPTY"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
