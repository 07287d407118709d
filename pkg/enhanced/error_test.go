package enhanced

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer/analysis"
	"github.com/msto63/errenhanced/pkg/enhancer/httpstatus"
	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
	"github.com/msto63/errenhanced/pkg/enhancer/systemcontext"
	"github.com/msto63/errenhanced/pkg/enhancer/userinfo"
)

func TestNewBindsComposedCapabilities(t *testing.T) {
	e := NewWithOptions(quietOptions(), "PaymentError", "card declined",
		identifiers.New(), httpstatus.New())

	assert.NotNil(t, e.Identifiers)
	assert.NotNil(t, e.HTTPStatus)
	assert.Nil(t, e.SystemContext)
	assert.Nil(t, e.UserInfo)
	assert.Nil(t, e.ApplicationState)
	assert.Nil(t, e.Analysis)
	assert.Len(t, e.Enhancers(), 2)

	_, err := e.SetStatusCode(402)
	require.NoError(t, err)
	assert.Equal(t, 402, e.StatusCode())

	_, err = e.SetSeverity(identifiers.SeverityCritical)
	require.NoError(t, err)
	assert.Equal(t, identifiers.SeverityCritical, e.Severity())
}

func TestNewSkipsNilEnhancers(t *testing.T) {
	e := NewWithOptions(quietOptions(), "X", "y", nil, userinfo.New(), nil)

	assert.Len(t, e.Enhancers(), 1)
	assert.NotNil(t, e.UserInfo)
}

func TestNewClonesEnhancers(t *testing.T) {
	ids := identifiers.New()
	e := NewWithOptions(quietOptions(), "X", "y", ids)

	_, err := e.SetErrorCode(42)
	require.NoError(t, err)

	assert.Equal(t, 42, e.ErrorCode())
	assert.Equal(t, -1, ids.ErrorCode(), "the caller's instance must not change")
	assert.NotSame(t, ids, e.Identifiers)
}

func TestNewDefaultsBlankName(t *testing.T) {
	e := NewWithOptions(quietOptions(), "  ", "something")
	assert.Equal(t, DefaultName, e.Name())
	assert.Equal(t, "Error: something", e.Error())
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "TimeoutError: upstream did not answer",
		NewWithOptions(quietOptions(), "TimeoutError", "upstream did not answer").Error())
	assert.Equal(t, "TimeoutError", NewWithOptions(quietOptions(), "TimeoutError", "").Error())
}

func TestSetName(t *testing.T) {
	e := NewWithOptions(quietOptions(), "First", "m")

	got, err := e.SetName("Second")
	require.NoError(t, err)
	assert.Same(t, e, got)
	assert.Equal(t, "Second", e.Name())

	got, err = e.SetName(" ")
	assert.Same(t, e, got)
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "Second", e.Name(), "failed setter must leave state unchanged")
}

func TestSetMessage(t *testing.T) {
	e := NewWithOptions(quietOptions(), "X", "old")
	assert.Same(t, e, e.SetMessage(""))
	assert.Empty(t, e.Message())
}

func TestStackCapturesCaller(t *testing.T) {
	e := NewWithOptions(quietOptions(), "X", "y")

	first, _, _ := strings.Cut(e.Stack(), "\n")
	assert.Contains(t, first, "TestStackCapturesCaller")
	assert.NotContains(t, e.Stack(), "enhanced.compose")
	assert.Contains(t, e.Stack(), "error_test.go:")
}

func TestFieldsOrder(t *testing.T) {
	e := NewWithOptions(quietOptions(), "X", "y", identifiers.New(), static("custom", 1))

	assert.Equal(t, []string{
		FieldName, FieldMessage, FieldStack,
		identifiers.FieldID,
		identifiers.FieldErrorCode,
		identifiers.FieldErrorCodePrefix,
		identifiers.FieldErrorDescription,
		identifiers.FieldTimestamp,
		identifiers.FieldHighPrecisionTimestamp,
		identifiers.FieldSeverity,
		identifiers.FieldCategory,
		"custom",
	}, fieldNames(e))
}

func TestFieldsLastWriteWins(t *testing.T) {
	e := NewWithOptions(quietOptions(), "X", "original",
		static("shared", "first", "only_a", true),
		static("shared", "second", FieldMessage, "overridden"))

	v, ok := e.Field("shared")
	require.True(t, ok)
	assert.Equal(t, "second", v)

	v, _ = e.Field(FieldMessage)
	assert.Equal(t, "overridden", v)

	// a field keeps the position of its first contributor
	assert.Equal(t, []string{FieldName, FieldMessage, FieldStack, "shared", "only_a"}, fieldNames(e))
}

func TestDuplicateCapabilityBindsLast(t *testing.T) {
	a := userinfo.New()
	_, err := a.SetUser("alice")
	require.NoError(t, err)
	b := userinfo.New()
	_, err = b.SetUser("bob")
	require.NoError(t, err)

	e := NewWithOptions(quietOptions(), "X", "y", a, b)
	assert.Equal(t, "bob", e.User())

	got, ok := Capability[*userinfo.UserInfo](e)
	require.True(t, ok)
	assert.Same(t, e.UserInfo, got)
}

func TestCapability(t *testing.T) {
	e := NewWithOptions(quietOptions(), "X", "y", systemcontext.New())

	sc, ok := Capability[*systemcontext.SystemContext](e)
	require.True(t, ok)
	assert.Same(t, e.SystemContext, sc)

	_, ok = Capability[*httpstatus.HTTPStatus](e)
	assert.False(t, ok)
}

func TestUnwrap(t *testing.T) {
	e := NewWithOptions(quietOptions(), "ReadError", "short read", analysis.New())
	assert.Nil(t, e.Unwrap())

	_, err := e.SetOriginalError(io.ErrUnexpectedEOF)
	require.NoError(t, err)
	assert.ErrorIs(t, e, io.ErrUnexpectedEOF)

	bare := NewWithOptions(quietOptions(), "X", "y")
	assert.Nil(t, bare.Unwrap())
	assert.False(t, errors.Is(bare, io.EOF))
}

func TestClone(t *testing.T) {
	e := NewWithOptions(quietOptions(), "X", "y", identifiers.New(), userinfo.New())
	_, err := e.SetErrorCode(7)
	require.NoError(t, err)

	c := e.Clone()
	_, err = c.SetErrorCode(8)
	require.NoError(t, err)
	_, err = c.SetRoles([]string{"admin"})
	require.NoError(t, err)

	assert.Equal(t, 7, e.ErrorCode())
	assert.Empty(t, e.Roles())
	assert.Equal(t, 8, c.ErrorCode())
	assert.Equal(t, e.ID(), c.ID())
	assert.Equal(t, e.Stack(), c.Stack())
}

func TestComposingMoreEnhancersAddsFields(t *testing.T) {
	a, b, c := identifiers.New(), httpstatus.New(), userinfo.New()

	two := fieldNames(NewWithOptions(quietOptions(), "X", "y", a, b))
	three := fieldNames(NewWithOptions(quietOptions(), "X", "y", a, b, c))

	for _, name := range two {
		assert.Contains(t, three, name)
	}
	for _, f := range c.Fields() {
		assert.Contains(t, three, f.Name)
	}
	assert.Greater(t, len(three), len(two))
}
