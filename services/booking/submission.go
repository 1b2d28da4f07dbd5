package booking

import (
	"context"

	"inkbook/models"
	"inkbook/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit runs the booking pipeline: validate, conflict check, decode the
// attachment, notify the studio, then mark the slot booked.
//
// The conflict check and the final Add are separate store calls. Two
// submissions for one slot can both pass the check; both notifications go out
// and the slot ends up booked once.
func (s *DefaultSubmissionService) Submit(ctx context.Context, req models.SubmissionRequest) (*Receipt, error) {
	logger := s.logger()
	normalize(&req)
	if err := validate(req, s.Options.StrictSlotFormat); err != nil {
		return nil, err
	}

	receipt := &Receipt{ID: uuid.NewString()}
	logger = logger.With(
		zap.String("submissionID", receipt.ID),
		zap.String("date", req.AppointmentDate),
		zap.String("time", req.AppointmentTime),
	)

	booked, err := s.Slots.IsBooked(ctx, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if booked {
		logger.Info("submission rejected, slot already booked")
		return nil, &models.SlotConflictError{Date: req.AppointmentDate, Time: req.AppointmentTime}
	}

	attachment, err := decodeAttachment(req.UploadedFile, s.Options.MaxAttachmentBytes)
	if err != nil {
		return nil, err
	}
	if attachment != nil && s.Archive != nil {
		url, err := s.Archive.Archive(ctx, attachment.Filename, attachment.Content)
		if err != nil {
			logger.Warn("could not archive reference image", zap.Error(err))
		} else {
			attachment.ArchiveURL = url
			receipt.ArchiveURL = url
		}
	}

	msg, err := notification.BookingMessage(s.Options.StudioName, req, attachment)
	if err != nil {
		return nil, &models.NotificationError{Err: err}
	}
	if err := s.Notifier.Send(ctx, msg); err != nil {
		logger.Error("booking notification failed", zap.Error(err))
		return nil, &models.NotificationError{Err: err}
	}

	// The studio already has the request; slot persistence is best effort.
	if err := s.Slots.Add(ctx, req.AppointmentDate, req.AppointmentTime); err != nil {
		logger.Error("notification sent but slot was not recorded", zap.Error(err))
		return receipt, nil
	}
	receipt.SlotRecorded = true
	logger.Info("booking submission accepted")
	return receipt, nil
}

func (s *DefaultSubmissionService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
