// File: grpc.go
// Title: gRPC Status Mapping
// Description: Lets status.FromError and gRPC servers translate a
//              composite into a status carrying its identifiers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
)

// ErrorDomain is reported in the ErrorInfo detail of gRPC statuses
const ErrorDomain = "errenhanced"

var categoryCodes = map[identifiers.Category]codes.Code{
	identifiers.CategoryValidation:     codes.InvalidArgument,
	identifiers.CategoryAuthentication: codes.Unauthenticated,
	identifiers.CategoryAuthorization:  codes.PermissionDenied,
	identifiers.CategorySecurity:       codes.PermissionDenied,
	identifiers.CategoryNetwork:        codes.Unavailable,
	identifiers.CategoryDatabase:       codes.Unavailable,
	identifiers.CategoryThirdParty:     codes.Unavailable,
	identifiers.CategoryBusinessLogic:  codes.FailedPrecondition,
	identifiers.CategoryConfiguration:  codes.FailedPrecondition,
	identifiers.CategoryDeprecation:    codes.Unimplemented,
	identifiers.CategoryPerformance:    codes.DeadlineExceeded,
	identifiers.CategoryInternal:       codes.Internal,
	identifiers.CategoryFileSystem:     codes.Internal,
}

// GRPCCode maps the error category to a gRPC code. Composites without
// Identifiers map to codes.Unknown.
func (e *Error) GRPCCode() codes.Code {
	if e.Identifiers == nil {
		return codes.Unknown
	}
	if c, ok := categoryCodes[e.Category()]; ok {
		return c
	}
	return codes.Unknown
}

// GRPCStatus implements the interface consulted by status.FromError
func (e *Error) GRPCStatus() *status.Status {
	st := status.New(e.GRPCCode(), e.Error())

	info := &errdetails.ErrorInfo{
		Reason:   e.name,
		Domain:   ErrorDomain,
		Metadata: map[string]string{},
	}
	if e.Identifiers != nil {
		info.Metadata["id"] = e.ID()
		info.Metadata["severity"] = e.Severity().String()
		info.Metadata["category"] = e.Category().String()
		if code := e.ErrorCode(); code > 0 {
			info.Metadata["errorCode"] = e.ErrorCodePrefix() + strconv.Itoa(code)
		}
	}

	detailed, err := st.WithDetails(info)
	if err != nil {
		return st
	}
	return detailed
}
