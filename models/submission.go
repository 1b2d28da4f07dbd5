package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// DesignTypeFlash marks a request for one of the studio's flash designs.
const DesignTypeFlash = "flash"

// SubmissionRequest is the body of POST /contact.
type SubmissionRequest struct {
	Name            string      `json:"name"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	DesignType      string      `json:"designType"`
	SelectedFlash   string      `json:"selectedFlash,omitempty"`
	Size            string      `json:"size"`
	Description     string      `json:"description"`
	AppointmentDate string      `json:"appointmentDate"`
	AppointmentTime string      `json:"appointmentTime"`
	UploadedFile    *Attachment `json:"uploadedFile,omitempty"`
}

// Attachment is a reference image sent along with a submission.
type Attachment struct {
	Name string         `json:"name"`
	Type string         `json:"type"`
	Size int64          `json:"size,omitempty"`
	Data AttachmentData `json:"data"`
}

// AttachmentData is the file payload in any of the shapes browsers send:
// a base64 string, a "data:<mime>;base64," URL, a JSON byte array, or a
// serialized Node Buffer ({"type":"Buffer","data":[...]}).
type AttachmentData struct {
	// Text holds the string forms, still encoded.
	Text string
	// Bytes holds the array forms, already raw.
	Bytes []byte
}

// Base64Data wraps an encoded string payload.
func Base64Data(s string) AttachmentData { return AttachmentData{Text: s} }

// Empty reports whether no payload was sent.
func (d AttachmentData) Empty() bool {
	return strings.TrimSpace(d.Text) == "" && len(d.Bytes) == 0
}

func (d *AttachmentData) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = AttachmentData{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*d = AttachmentData{Text: s}
		return nil
	case '[':
		raw, err := byteArray(trimmed)
		if err != nil {
			return err
		}
		*d = AttachmentData{Bytes: raw}
		return nil
	case '{':
		var buf struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &buf); err != nil {
			return err
		}
		if buf.Type != "Buffer" {
			return fmt.Errorf("unsupported attachment data object of type %q", buf.Type)
		}
		raw, err := byteArray(buf.Data)
		if err != nil {
			return err
		}
		*d = AttachmentData{Bytes: raw}
		return nil
	default:
		return fmt.Errorf("unsupported attachment data %.20q", trimmed)
	}
}

func (d AttachmentData) MarshalJSON() ([]byte, error) {
	if len(d.Bytes) > 0 {
		return json.Marshal(base64.StdEncoding.EncodeToString(d.Bytes))
	}
	return json.Marshal(d.Text)
}

func byteArray(b []byte) ([]byte, error) {
	var ints []int
	if err := json.Unmarshal(b, &ints); err != nil {
		return nil, fmt.Errorf("attachment data: %w", err)
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("attachment data: byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// DecodedAttachment is an Attachment after transport decoding and checks.
type DecodedAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
	// ArchiveURL is set when the file was also archived to media storage.
	ArchiveURL string
}

// SubmissionResponse is returned by POST /contact on success.
type SubmissionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
