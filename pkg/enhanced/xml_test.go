package enhanced

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/errenhanced/pkg/core/config"
	"github.com/msto63/errenhanced/pkg/core/log"
	"github.com/msto63/errenhanced/pkg/enhancer/httpstatus"
	"github.com/msto63/errenhanced/pkg/enhancer/userinfo"
)

func TestSanitizeXMLTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DatabaseError", "DatabaseError"},
		{"_errorCode", "_errorCode"},
		{"a.b-c", "a.b-c"},
		{"my error!", "my_error_"},
		{"1abc", "_1abc"},
		{"-lead", "_-lead"},
		{".dot", "_.dot"},
		{"ünïcode", "_n_code"},
		{"", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeXMLTag(tt.in))
		})
	}
}

func TestToXML(t *testing.T) {
	opts := quietOptions()
	opts.XMLIndent = "  "
	e := networkError(t, opts)

	out, err := e.ToXML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, "<DatabaseError>")
	assert.Contains(t, out, "\n  <name>DatabaseError</name>")
	assert.Contains(t, out, "<_errorCode>5432</_errorCode>")
	assert.Contains(t, out, "<_errorCodePrefix>EE</_errorCodePrefix>")
	assert.Contains(t, out, "<_severity>high</_severity>")
	assert.True(t, strings.HasSuffix(out, "</DatabaseError>"))

	assertWellFormed(t, out)
}

func TestToXMLArraysAndEmptyValues(t *testing.T) {
	e := NewWithOptions(quietOptions(), "bad name", "a < b & c", userinfo.New(), httpstatus.New())
	_, err := e.SetRoles([]string{"admin", "ops"})
	require.NoError(t, err)

	out, err := e.ToXML()
	require.NoError(t, err)
	assert.Contains(t, out, "<bad_name>")
	assert.Contains(t, out, "<message>a &lt; b &amp; c</message>")
	assert.Contains(t, out, "<item_0>admin</item_0>")
	assert.Contains(t, out, "<item_1>ops</item_1>")
	assert.Contains(t, out, "<_requestBody></_requestBody>")

	assertWellFormed(t, out)
}

func TestToXMLIndentsByDefault(t *testing.T) {
	e := NewWithOptions(quietOptions(), "E", "m")

	out, err := e.ToXML()
	require.NoError(t, err)
	assert.Contains(t, out, "<E>\n  <name>E</name>\n  <message>m</message>")
}

func TestToXMLCompactFromSettings(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Serializer.XMLIndent = ""
	opts := OptionsFromSettings(settings, log.Discard(), nil)
	assert.True(t, opts.CompactXML)

	out, err := NewWithOptions(opts, "E", "m").ToXML()
	require.NoError(t, err)
	assert.NotContains(t, strings.TrimPrefix(out, xml.Header), "\n")
}

func TestToXMLCompact(t *testing.T) {
	opts := quietOptions()
	opts.CompactXML = true
	e := NewWithOptions(opts, "E", "m", static("n", 1.25))

	out, err := e.ToXML()
	require.NoError(t, err)
	body := strings.TrimPrefix(out, xml.Header)
	assert.NotContains(t, body, "\n")
	assert.Contains(t, body, "<E><name>E</name><message>m</message>")
	assert.Contains(t, body, "<n>1.25</n>")
}

func assertWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, "document should be well formed")
	}
}
