package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentDataShapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantText  string
		wantBytes []byte
	}{
		{"base64 string", `{"name":"a.png","data":"iVBORw=="}`, "iVBORw==", nil},
		{"data url", `{"data":"data:image/png;base64,iVBORw=="}`, "data:image/png;base64,iVBORw==", nil},
		{"byte array", `{"data":[137,80,78,71]}`, "", []byte{137, 80, 78, 71}},
		{"node buffer", `{"data":{"type":"Buffer","data":[137,80]}}`, "", []byte{137, 80}},
		{"null", `{"data":null}`, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Attachment
			require.NoError(t, json.Unmarshal([]byte(tt.body), &a))
			assert.Equal(t, tt.wantText, a.Data.Text)
			assert.Equal(t, tt.wantBytes, a.Data.Bytes)
		})
	}
}

func TestAttachmentDataRejects(t *testing.T) {
	for _, body := range []string{
		`{"data":[1,256]}`,
		`{"data":{"type":"Blob","data":[1]}}`,
		`{"data":42}`,
	} {
		var a Attachment
		assert.Error(t, json.Unmarshal([]byte(body), &a), body)
	}
}

func TestAttachmentDataMarshal(t *testing.T) {
	b, err := json.Marshal(AttachmentData{Bytes: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `"AQID"`, string(b))

	b, err = json.Marshal(Base64Data("data:image/png;base64,AQID"))
	require.NoError(t, err)
	assert.JSONEq(t, `"data:image/png;base64,AQID"`, string(b))

	assert.True(t, AttachmentData{Text: "  "}.Empty())
	assert.False(t, AttachmentData{Bytes: []byte{0}}.Empty())
}
