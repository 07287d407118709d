// File: identifiers.go
// Title: Identifiers Enhancer
// Description: Identity and classification for an enhanced error: a unique
//              id, an error code with prefix and description, creation
//              timestamps, severity and category.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

// Package identifiers provides the Identifiers enhancer.
package identifiers

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

// Field names contributed by Identifiers
const (
	FieldID                     = "_id"
	FieldErrorCode              = "_errorCode"
	FieldErrorCodePrefix        = "_errorCodePrefix"
	FieldErrorDescription       = "_errorDescription"
	FieldTimestamp              = "_timestamp"
	FieldHighPrecisionTimestamp = "_highPrecisionTimestamp"
	FieldSeverity               = "_severity"
	FieldCategory               = "_category"
)

// processStart anchors the monotonic high precision timestamps
var processStart = time.Now()

// Identifiers holds identity and classification state
type Identifiers struct {
	id                     string
	errorCode              int
	errorCodePrefix        string
	errorDescription       string
	timestamp              int64
	highPrecisionTimestamp *big.Int
	severity               Severity
	category               Category
}

// New creates Identifiers with a fresh id and creation timestamps
func New() *Identifiers {
	now := time.Now()
	return &Identifiers{
		id:                     uuid.NewString(),
		errorCode:              -1,
		timestamp:              now.UnixMilli(),
		highPrecisionTimestamp: big.NewInt(int64(now.Sub(processStart))),
		severity:               SeverityMedium,
		category:               CategoryUnknown,
	}
}

// ID returns the unique identifier
func (i *Identifiers) ID() string {
	return i.id
}

// ErrorCode returns the error code, -1 until set
func (i *Identifiers) ErrorCode() int {
	return i.errorCode
}

// SetErrorCode sets the error code, which must be a positive integer
func (i *Identifiers) SetErrorCode(code int) (*Identifiers, error) {
	if r := validation.PositiveInt(code); !r.Valid {
		return i, r.ToError("errorCode", code)
	}
	i.errorCode = code
	return i, nil
}

// ErrorCodePrefix returns the error code prefix
func (i *Identifiers) ErrorCodePrefix() string {
	return i.errorCodePrefix
}

// SetErrorCodePrefix sets the error code prefix. The empty string is allowed.
func (i *Identifiers) SetErrorCodePrefix(prefix string) (*Identifiers, error) {
	if r := validation.String(prefix); !r.Valid {
		return i, r.ToError("errorCodePrefix", prefix)
	}
	i.errorCodePrefix = prefix
	return i, nil
}

// ErrorDescription returns the free text description
func (i *Identifiers) ErrorDescription() string {
	return i.errorDescription
}

// SetErrorDescription sets the description, which must not be blank
func (i *Identifiers) SetErrorDescription(description string) (*Identifiers, error) {
	if r := validation.NonEmptyString(description); !r.Valid {
		return i, r.ToError("errorDescription", description)
	}
	i.errorDescription = description
	return i, nil
}

// Timestamp returns the creation time in Unix milliseconds
func (i *Identifiers) Timestamp() int64 {
	return i.timestamp
}

// HighPrecisionTimestamp returns the monotonic creation time in nanoseconds
// since process start as a decimal string
func (i *Identifiers) HighPrecisionTimestamp() string {
	return i.highPrecisionTimestamp.String()
}

// Severity returns the severity, medium by default
func (i *Identifiers) Severity() Severity {
	return i.severity
}

// SetSeverity sets the severity
func (i *Identifiers) SetSeverity(severity Severity) (*Identifiers, error) {
	if r := validation.OneOf(severity, Severities()); !r.Valid {
		return i, r.ToError("severity", severity)
	}
	i.severity = severity
	return i, nil
}

// Category returns the category, unknown by default
func (i *Identifiers) Category() Category {
	return i.category
}

// SetCategory sets the category
func (i *Identifiers) SetCategory(category Category) (*Identifiers, error) {
	if r := validation.OneOf(category, Categories()); !r.Valid {
		return i, r.ToError("category", category)
	}
	i.category = category
	return i, nil
}

// Hash returns an MD5 hex digest of the classification fields. Two errors
// with equal code, prefix, description, severity and category hash equally.
func (i *Identifiers) Hash() string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d|%s|%s|%s|%s",
		i.errorCode, i.errorCodePrefix, i.errorDescription, i.severity, i.category)))
	return hex.EncodeToString(sum[:])
}

// Fields implements enhancer.Enhancer
func (i *Identifiers) Fields() []enhancer.Field {
	return []enhancer.Field{
		{Name: FieldID, Value: i.id},
		{Name: FieldErrorCode, Value: i.errorCode},
		{Name: FieldErrorCodePrefix, Value: i.errorCodePrefix},
		{Name: FieldErrorDescription, Value: i.errorDescription},
		{Name: FieldTimestamp, Value: i.timestamp},
		{Name: FieldHighPrecisionTimestamp, Value: i.highPrecisionTimestamp},
		{Name: FieldSeverity, Value: i.severity},
		{Name: FieldCategory, Value: i.category},
	}
}

// Clone implements enhancer.Enhancer
func (i *Identifiers) Clone() enhancer.Enhancer {
	c := *i
	c.highPrecisionTimestamp = new(big.Int).Set(i.highPrecisionTimestamp)
	return &c
}
