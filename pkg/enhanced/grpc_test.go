package enhanced

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
)

func TestGRPCCodeByCategory(t *testing.T) {
	tests := []struct {
		category identifiers.Category
		want     codes.Code
	}{
		{identifiers.CategoryValidation, codes.InvalidArgument},
		{identifiers.CategoryAuthentication, codes.Unauthenticated},
		{identifiers.CategoryAuthorization, codes.PermissionDenied},
		{identifiers.CategorySecurity, codes.PermissionDenied},
		{identifiers.CategoryNetwork, codes.Unavailable},
		{identifiers.CategoryDatabase, codes.Unavailable},
		{identifiers.CategoryThirdParty, codes.Unavailable},
		{identifiers.CategoryBusinessLogic, codes.FailedPrecondition},
		{identifiers.CategoryConfiguration, codes.FailedPrecondition},
		{identifiers.CategoryDeprecation, codes.Unimplemented},
		{identifiers.CategoryPerformance, codes.DeadlineExceeded},
		{identifiers.CategoryInternal, codes.Internal},
		{identifiers.CategoryFileSystem, codes.Internal},
		{identifiers.CategoryUnknown, codes.Unknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			e := NewWithOptions(quietOptions(), "E", "m", identifiers.New())
			_, err := e.SetCategory(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.GRPCCode())
		})
	}
}

func TestGRPCCodeWithoutIdentifiers(t *testing.T) {
	e := NewWithOptions(quietOptions(), "E", "m")
	assert.Equal(t, codes.Unknown, e.GRPCCode())
	assert.Equal(t, codes.Unknown, status.Code(e))
}

func TestStatusFromError(t *testing.T) {
	e := networkError(t, quietOptions())

	st, ok := status.FromError(e)
	require.True(t, ok)
	assert.Equal(t, codes.Unavailable, st.Code())
	assert.Equal(t, "DatabaseError: connection refused", st.Message())

	details := st.Details()
	require.Len(t, details, 1)
	info, ok := details[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	assert.Equal(t, "DatabaseError", info.GetReason())
	assert.Equal(t, ErrorDomain, info.GetDomain())
	assert.Equal(t, "EE5432", info.GetMetadata()["errorCode"])
	assert.Equal(t, "high", info.GetMetadata()["severity"])
	assert.Equal(t, "network", info.GetMetadata()["category"])
	assert.Equal(t, e.ID(), info.GetMetadata()["id"])
}

func TestStatusFromWrappedError(t *testing.T) {
	e := networkError(t, quietOptions())
	wrapped := fmt.Errorf("query users: %w", e)

	assert.Equal(t, codes.Unavailable, status.Code(wrapped))
}
