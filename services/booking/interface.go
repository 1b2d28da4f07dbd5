package booking

import (
	"context"

	slotRepo "inkbook/database/repository/slots"
	"inkbook/models"
	"inkbook/services/notification"
	"inkbook/services/storage"

	"go.uber.org/zap"
)

// SubmissionService turns a visitor's booking request into a studio
// notification and a booked slot.
type SubmissionService interface {
	Submit(ctx context.Context, req models.SubmissionRequest) (*Receipt, error)
}

// Receipt describes an accepted submission.
type Receipt struct {
	ID string
	// SlotRecorded is false when the notification went out but the slot
	// could not be written to the store.
	SlotRecorded bool
	ArchiveURL   string
}

// Options tune submission checks.
type Options struct {
	StudioName         string
	MaxAttachmentBytes int64
	// StrictSlotFormat rejects dates and times that are not YYYY-MM-DD / HH:MM.
	StrictSlotFormat bool
}

// DefaultSubmissionService implements SubmissionService.
type DefaultSubmissionService struct {
	Slots    slotRepo.SlotRepository
	Notifier notification.Notifier
	// Archive is optional; when nil, attachments are only emailed.
	Archive storage.ImageArchive
	Options Options
	Logger  *zap.Logger
}
