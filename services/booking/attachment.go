package booking

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"inkbook/models"
)

const defaultAttachmentName = "reference-image"

// decodeAttachment converts the transport form of an uploaded file into raw
// bytes and checks its size and media type. A media type in a data URL is
// used when none was declared; failing both, the content is sniffed.
func decodeAttachment(a *models.Attachment, maxBytes int64) (*models.DecodedAttachment, error) {
	if a == nil || a.Data.Empty() {
		return nil, nil
	}

	declared := strings.TrimSpace(a.Type)
	content := a.Data.Bytes
	if content == nil {
		var err error
		content, declared, err = decodeText(strings.TrimSpace(a.Data.Text), declared, maxBytes)
		if err != nil {
			return nil, err
		}
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return nil, attachmentError(fmt.Sprintf("uploaded file exceeds %d bytes", maxBytes))
	}

	if declared == "" {
		declared = http.DetectContentType(content)
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, attachmentError(fmt.Sprintf("uploaded file must be an image, got %q", declared))
	}

	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = defaultAttachmentName
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			name += exts[0]
		}
	}
	return &models.DecodedAttachment{Filename: name, ContentType: mediaType, Content: content}, nil
}

// decodeText handles the base64 and data URL forms.
func decodeText(payload, declared string, maxBytes int64) ([]byte, string, error) {
	if strings.HasPrefix(payload, "data:") {
		header, body, ok := strings.Cut(payload, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, "", attachmentError("uploaded file must be base64 encoded")
		}
		if declared == "" {
			declared = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		payload = body
	}

	// Cheap size check before allocating the decoded buffer.
	if maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return nil, "", attachmentError(fmt.Sprintf("uploaded file exceeds %d bytes", maxBytes))
	}
	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", attachmentError("uploaded file is not valid base64")
	}
	return content, declared, nil
}

func attachmentError(msg string) error {
	return &models.ValidationError{Fields: []string{"uploadedFile"}, Message: msg}
}
