// File: category.go
// Title: Error Categories
// Description: Defines the closed set of error categories and their
//              mapping to HTTP status codes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package identifiers

import "net/http"

// Category classifies the area an error originates from
type Category string

const (
	CategoryNetwork        Category = "network"
	CategoryDatabase       Category = "database"
	CategoryValidation     Category = "validation"
	CategoryAuthentication Category = "authentication"
	CategoryAuthorization  Category = "authorization"
	CategoryBusinessLogic  Category = "business_logic"
	CategoryConfiguration  Category = "configuration"
	CategoryDeprecation    Category = "deprecation"
	CategoryFileSystem     Category = "file_system"
	CategoryPerformance    Category = "performance"
	CategorySecurity       Category = "security"
	CategoryThirdParty     Category = "third_party"
	CategoryInternal       Category = "internal"
	CategoryUnknown        Category = "unknown"
)

// Categories returns every valid category
func Categories() []Category {
	return []Category{
		CategoryNetwork,
		CategoryDatabase,
		CategoryValidation,
		CategoryAuthentication,
		CategoryAuthorization,
		CategoryBusinessLogic,
		CategoryConfiguration,
		CategoryDeprecation,
		CategoryFileSystem,
		CategoryPerformance,
		CategorySecurity,
		CategoryThirdParty,
		CategoryInternal,
		CategoryUnknown,
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// HTTPStatus returns the appropriate HTTP status code for this category
func (c Category) HTTPStatus() int {
	switch c {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryAuthentication:
		return http.StatusUnauthorized
	case CategoryAuthorization, CategorySecurity:
		return http.StatusForbidden
	case CategoryBusinessLogic:
		return http.StatusUnprocessableEntity
	case CategoryDeprecation:
		return http.StatusGone
	case CategoryNetwork, CategoryThirdParty:
		return http.StatusBadGateway
	case CategoryDatabase:
		return http.StatusServiceUnavailable
	case CategoryPerformance:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
