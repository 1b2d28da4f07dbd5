package booking

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	slotRepo "inkbook/database/repository/slots"
	"inkbook/models"
	"inkbook/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRepo wraps the in-memory store, counting calls and injecting failures.
type spyRepo struct {
	slotRepo.SlotRepository
	mu          sync.Mutex
	calls       int
	isBookedErr error
	addErr      error
}

func (r *spyRepo) IsBooked(ctx context.Context, date, t string) (bool, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.isBookedErr != nil {
		return false, r.isBookedErr
	}
	return r.SlotRepository.IsBooked(ctx, date, t)
}

func (r *spyRepo) Add(ctx context.Context, date, t string) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.addErr != nil {
		return r.addErr
	}
	return r.SlotRepository.Add(ctx, date, t)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

type fakeArchive struct {
	url string
	err error
}

func (a *fakeArchive) Archive(ctx context.Context, filename string, content []byte) (string, error) {
	return a.url, a.err
}

func newService() (*DefaultSubmissionService, *spyRepo, *fakeNotifier) {
	repo := &spyRepo{SlotRepository: slotRepo.NewMemorySlotRepo()}
	notifier := &fakeNotifier{}
	svc := &DefaultSubmissionService{
		Slots:    repo,
		Notifier: notifier,
		Options:  Options{StudioName: "Ink Studio", MaxAttachmentBytes: 5 << 20},
	}
	return svc, repo, notifier
}

func validRequest() models.SubmissionRequest {
	return models.SubmissionRequest{
		Name:            "Ada",
		Email:           "ada@example.com",
		DesignType:      "custom",
		Size:            "palm",
		Description:     "fine line botanical",
		AppointmentDate: "2025-03-10",
		AppointmentTime: "14:00",
	}
}

// pngBytes starts with the PNG signature so content sniffing sees an image.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSubmitSuccess(t *testing.T) {
	svc, repo, notifier := newService()
	ctx := context.Background()

	receipt, err := svc.Submit(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
	assert.True(t, receipt.SlotRecorded)
	assert.Len(t, notifier.sent, 1)

	booked, err := repo.IsBooked(ctx, "2025-03-10", "14:00")
	require.NoError(t, err)
	assert.True(t, booked)
}

func TestSubmitConflict(t *testing.T) {
	svc, repo, notifier := newService()
	ctx := context.Background()
	require.NoError(t, repo.SlotRepository.Add(ctx, "2025-03-10", "14:00"))

	_, err := svc.Submit(ctx, validRequest())
	assert.True(t, errors.Is(err, models.ErrSlotConflict))
	assert.Empty(t, notifier.sent)
}

func TestSubmitValidationHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SubmissionRequest)
		field  string
	}{
		{"no contact", func(r *models.SubmissionRequest) { r.Email = ""; r.Phone = "" }, "email or phone"},
		{"no name", func(r *models.SubmissionRequest) { r.Name = "  " }, "name"},
		{"no size", func(r *models.SubmissionRequest) { r.Size = "" }, "size"},
		{"no description", func(r *models.SubmissionRequest) { r.Description = "" }, "description"},
		{"no date", func(r *models.SubmissionRequest) { r.AppointmentDate = "" }, "appointmentDate"},
		{"no time", func(r *models.SubmissionRequest) { r.AppointmentTime = "" }, "appointmentTime"},
		{"flash without design", func(r *models.SubmissionRequest) { r.DesignType = "flash" }, "selectedFlash"},
		{"bad email", func(r *models.SubmissionRequest) { r.Email = "not-an-email" }, "email"},
		{"separator in date", func(r *models.SubmissionRequest) { r.AppointmentDate = "2025|03" }, "appointmentDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier := newService()
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Contains(t, vErr.Fields, tt.field)
			assert.Zero(t, repo.calls, "store must not be touched")
			assert.Empty(t, notifier.sent)
		})
	}
}

func TestSubmitPhoneOnly(t *testing.T) {
	svc, _, notifier := newService()
	req := validRequest()
	req.Email = ""
	req.Phone = "+1 555 0100"

	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Empty(t, notifier.sent[0].ReplyTo)
}

func TestSubmitStrictSlotFormat(t *testing.T) {
	svc, _, _ := newService()
	req := validRequest()
	req.AppointmentTime = "2pm"

	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err, "lenient mode accepts any non-empty time")

	svc, _, _ = newService()
	svc.Options.StrictSlotFormat = true
	_, err = svc.Submit(context.Background(), req)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestSubmitNotificationFailureLeavesSlotOpen(t *testing.T) {
	svc, repo, notifier := newService()
	notifier.err = errors.New("resend: 500")
	ctx := context.Background()

	_, err := svc.Submit(ctx, validRequest())
	assert.True(t, errors.Is(err, models.ErrNotification))

	booked, err := repo.IsBooked(ctx, "2025-03-10", "14:00")
	require.NoError(t, err)
	assert.False(t, booked)
}

func TestSubmitStoreFailureAfterSendStillSucceeds(t *testing.T) {
	svc, repo, notifier := newService()
	repo.addErr = &models.StoreUnavailableError{Backend: "redis", Op: "add", Err: errors.New("timeout")}

	receipt, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, receipt.SlotRecorded)
	assert.Len(t, notifier.sent, 1)
}

func TestSubmitStoreUnavailableAtCheck(t *testing.T) {
	svc, repo, notifier := newService()
	repo.isBookedErr = &models.StoreUnavailableError{Backend: "redis", Op: "isBooked", Err: errors.New("refused")}

	_, err := svc.Submit(context.Background(), validRequest())
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
	assert.Empty(t, notifier.sent)
}

func TestSubmitWithAttachment(t *testing.T) {
	svc, _, notifier := newService()
	svc.Archive = &fakeArchive{url: "https://res.cloudinary.com/demo/ref.png"}
	req := validRequest()
	req.UploadedFile = &models.Attachment{
		Name: "ref.png",
		Data: models.Base64Data("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)),
	}

	receipt, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/ref.png", receipt.ArchiveURL)
	require.Len(t, notifier.sent, 1)
	att := notifier.sent[0].Attachment
	require.NotNil(t, att)
	assert.Equal(t, pngBytes, att.Content)
	assert.Equal(t, "image/png", att.ContentType)
	assert.Contains(t, notifier.sent[0].HTML, "res.cloudinary.com/demo/ref.png")
}

func TestSubmitArchiveFailureIsIgnored(t *testing.T) {
	svc, _, notifier := newService()
	svc.Archive = &fakeArchive{err: errors.New("cloudinary down")}
	req := validRequest()
	req.UploadedFile = &models.Attachment{Name: "ref.png", Type: "image/png", Data: models.AttachmentData{Bytes: pngBytes}}

	receipt, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, receipt.ArchiveURL)
	require.Len(t, notifier.sent, 1)
	assert.NotNil(t, notifier.sent[0].Attachment)
}

func TestSubmitRejectsBadAttachments(t *testing.T) {
	tests := []struct {
		name string
		file models.Attachment
	}{
		{"not an image", models.Attachment{Name: "a.pdf", Type: "application/pdf", Data: models.Base64Data(base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")))}},
		{"data url not image", models.Attachment{Name: "a.txt", Data: models.Base64Data("data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hi")))}},
		{"not base64", models.Attachment{Name: "a.png", Type: "image/png", Data: models.Base64Data("***")}},
		{"too large", models.Attachment{Name: "a.png", Type: "image/png", Data: models.Base64Data(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 2048))))}},
		{"raw too large", models.Attachment{Name: "a.png", Type: "image/png", Data: models.AttachmentData{Bytes: make([]byte, 2048)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, notifier := newService()
			svc.Options.MaxAttachmentBytes = 1024
			req := validRequest()
			file := tt.file
			req.UploadedFile = &file

			_, err := svc.Submit(context.Background(), req)
			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, []string{"uploadedFile"}, vErr.Fields)
			assert.Empty(t, notifier.sent)
		})
	}
}

func TestDecodeAttachmentNaming(t *testing.T) {
	att, err := decodeAttachment(&models.Attachment{Data: models.Base64Data(base64.StdEncoding.EncodeToString(pngBytes))}, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", att.ContentType)
	assert.True(t, strings.HasPrefix(att.Filename, defaultAttachmentName), att.Filename)

	att, err = decodeAttachment(&models.Attachment{Name: "x.png"}, 0)
	require.NoError(t, err)
	assert.Nil(t, att, "empty data means no attachment")
}

func TestConcurrentSubmissionsBookOnce(t *testing.T) {
	svc, repo, notifier := newService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, validRequest())
			if err != nil {
				assert.True(t, errors.Is(err, models.ErrSlotConflict), "unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.GreaterOrEqual(t, len(notifier.sent), 1)
}
