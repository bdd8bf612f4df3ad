package tvcontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPath(t *testing.T) {
	tests := []struct {
		namespace string
		want      []interface{}
	}{
		{"CreateContentRequest.url", []interface{}{"url"}},
		{"ReplaceContentsRequest.contents", []interface{}{"contents"}},
		{"ReplaceContentsRequest.contents[3].delay", []interface{}{"contents", 3, "delay"}},
		{"url", []interface{}{"url"}},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldPath(tt.namespace))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidateCreateContent(CreateContentRequest{URL: "bad"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Details, 2)
	assert.Equal(t, `"url" must be a valid uri. "delay" is required`, ve.Message)
	assert.Equal(t, ve.Message, ve.Error())
}

func TestValidateCreateContentIgnoresCaption(t *testing.T) {
	delay := int64(2)
	assert.NoError(t, ValidateCreateContent(CreateContentRequest{URL: "https://example.com/a?b=c", Delay: &delay}))
	assert.NoError(t, ValidateCreateContent(CreateContentRequest{URL: "https://example.com", Delay: &delay, Caption: "hi"}))
}

func TestParseContentID(t *testing.T) {
	id, err := ParseContentID("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), id)

	id, err = ParseContentID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "1.5", "12abc"} {
		_, err := ParseContentID(bad)
		assert.ErrorIs(t, err, ErrInvalidContentID, bad)
	}
}

func TestMarshalEmptyDocument(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, `{"contents":[]}`, string(data))

	data, err = Marshal(&Document{})
	require.NoError(t, err)
	assert.Equal(t, `{"contents":[]}`, string(data))

	doc, err := Unmarshal([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Contents)
	assert.Empty(t, doc.Contents)
}
