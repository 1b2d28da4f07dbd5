package booking

import (
	"net/mail"
	"strings"

	"inkbook/models"
)

// normalize trims surrounding whitespace from every text field.
func normalize(req *models.SubmissionRequest) {
	for _, f := range []*string{
		&req.Name, &req.Email, &req.Phone, &req.DesignType, &req.SelectedFlash,
		&req.Size, &req.Description, &req.AppointmentDate, &req.AppointmentTime,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// validate checks presence and shape of the request fields. It touches
// nothing outside req.
func validate(req models.SubmissionRequest, strictSlot bool) error {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Size == "" {
		missing = append(missing, "size")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Email == "" && req.Phone == "" {
		missing = append(missing, "email or phone")
	}
	if req.AppointmentDate == "" {
		missing = append(missing, "appointmentDate")
	}
	if req.AppointmentTime == "" {
		missing = append(missing, "appointmentTime")
	}
	if req.DesignType == models.DesignTypeFlash && req.SelectedFlash == "" {
		missing = append(missing, "selectedFlash")
	}
	if len(missing) > 0 {
		return &models.ValidationError{Fields: missing}
	}

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return &models.ValidationError{Fields: []string{"email"}, Message: "email address is not valid"}
		}
	}
	if _, err := models.EncodeSlotKey(req.AppointmentDate, req.AppointmentTime); err != nil {
		return &models.ValidationError{Fields: []string{"appointmentDate", "appointmentTime"}, Message: err.Error()}
	}
	if strictSlot {
		if err := models.ValidateSlotFormat(req.AppointmentDate, req.AppointmentTime); err != nil {
			return &models.ValidationError{Fields: []string{"appointmentDate", "appointmentTime"}, Message: err.Error()}
		}
	}
	return nil
}
