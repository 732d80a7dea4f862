package web

import (
	"net/http"

	"catalogstats/internal/domain"
	"catalogstats/internal/ports/output"
)

// errorStatus maps a domain error code to the HTTP status it is served with.
func errorStatus(code string) int {
	switch code {
	case "catalog_empty":
		return http.StatusServiceUnavailable
	case "invalid_record", "unknown_kind", "invalid_header":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// TranslateDomainError resolves a domain error code to a localized message.
func TranslateDomainError(tr output.T, locale, code string) string {
	switch code {
	case "catalog_empty":
		return tr.T(locale, "error.catalog_empty", nil)
	default:
		return tr.T(locale, "error.generic", nil)
	}
}

// DomainErrorMessage extracts the domain error code from err and resolves it.
func DomainErrorMessage(tr output.T, locale string, err error) (status int, code, msg string) {
	code = domain.Code(err)
	return errorStatus(code), code, TranslateDomainError(tr, locale, code)
}
