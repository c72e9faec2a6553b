package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to 500 so a new domain error can
// never silently leak as a success.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// auth
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,

	// resources
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_EMAIL":      http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// validation of client input
	"INVALID_INPUT":      http.StatusBadRequest,
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_EMAIL":      http.StatusBadRequest,
	"INVALID_PASSWORD":   http.StatusBadRequest,
	"INVALID_PRICE":      http.StatusBadRequest,
	"INVALID_STOCK":      http.StatusBadRequest,
	"INVALID_IMAGE_URL":  http.StatusBadRequest,
	"INVALID_QUANTITY":   http.StatusBadRequest,
	"INVALID_PRODUCT_ID": http.StatusBadRequest,

	// checkout rules
	"EMPTY_CART":               http.StatusUnprocessableEntity,
	"INCOMPLETE_SHIPPING_INFO": http.StatusUnprocessableEntity,
	"INVALID_PAYMENT_METHOD":   http.StatusUnprocessableEntity,
	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"PAYMENT_DECLINED":         http.StatusPaymentRequired,
	"PAYMENT_GATEWAY":          http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
