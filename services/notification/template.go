package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"inkbook/models"
)

var bookingTemplate = template.Must(template.New("booking").Parse(`<h2>New Tattoo Booking Request</h2>
<p><strong>Studio:</strong> {{.Studio}}</p>
<p><strong>Name:</strong> {{.Req.Name}}</p>
{{- if .Req.Email}}
<p><strong>Email:</strong> {{.Req.Email}}</p>
{{- end}}
{{- if .Req.Phone}}
<p><strong>Phone:</strong> {{.Req.Phone}}</p>
{{- end}}
<p><strong>Appointment:</strong> {{.Req.AppointmentDate}} at {{.Req.AppointmentTime}}</p>
<p><strong>Design Type:</strong> {{.Req.DesignType}}</p>
{{- if .Flash}}
<p><strong>Selected Flash Design:</strong> {{.Req.SelectedFlash}}</p>
{{- end}}
<p><strong>Size:</strong> {{.Req.Size}}</p>
<p><strong>Description:</strong> {{.Req.Description}}</p>
{{- with .Attachment}}
<p><strong>File Uploaded:</strong> {{.Filename}}{{if .ArchiveURL}} (<a href="{{.ArchiveURL}}">view</a>){{end}}</p>
{{- end}}
`))

// BookingMessage renders the studio notification for a validated submission.
// User-provided fields are HTML-escaped.
func BookingMessage(studio string, req models.SubmissionRequest, attachment *models.DecodedAttachment) (Message, error) {
	var buf bytes.Buffer
	data := struct {
		Studio     string
		Req        models.SubmissionRequest
		Flash      bool
		Attachment *models.DecodedAttachment
	}{
		Studio:     studio,
		Req:        req,
		Flash:      req.DesignType == models.DesignTypeFlash && req.SelectedFlash != "",
		Attachment: attachment,
	}
	if err := bookingTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render booking email: %w", err)
	}
	return Message{
		Subject:    "New Tattoo Booking: " + req.Name,
		HTML:       buf.String(),
		ReplyTo:    req.Email,
		Attachment: attachment,
	}, nil
}
