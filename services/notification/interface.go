package notification

import (
	"context"
	"fmt"

	"inkbook/models"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Message is one booking notification addressed to the studio owner.
type Message struct {
	Subject    string
	HTML       string
	ReplyTo    string
	Attachment *models.DecodedAttachment
}

// Notifier delivers booking notifications to the studio.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// emailSender is the slice of the Resend client we use.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendNotifier sends notifications through the Resend email API.
type ResendNotifier struct {
	emails emailSender
	from   string
	to     string
	logger *zap.Logger
}

// NewResendNotifier returns an error when the API key or recipient is missing.
func NewResendNotifier(apiKey, from, to string, logger *zap.Logger) (*ResendNotifier, error) {
	if apiKey == "" || to == "" {
		return nil, fmt.Errorf("notification service initialization error: RESEND_API_KEY and ADMIN_EMAIL are required")
	}
	client := resend.NewClient(apiKey)
	return &ResendNotifier{emails: client.Emails, from: from, to: to, logger: logger}, nil
}

// Send delivers msg and returns the transport error unchanged.
func (n *ResendNotifier) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	if a := msg.Attachment; a != nil {
		params.Attachments = []*resend.Attachment{{
			Content:  a.Content,
			Filename: a.Filename,
		}}
	}

	sent, err := n.emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("ResendNotifier: failed to send email: %w", err)
	}
	n.logger.Info("booking notification sent", zap.String("emailID", sent.Id), zap.String("subject", msg.Subject))
	return nil
}

// LogNotifier only logs notifications. It stands in for email during local
// development when no Resend key is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	fields := []zap.Field{
		zap.String("subject", msg.Subject),
		zap.String("replyTo", msg.ReplyTo),
		zap.Int("htmlBytes", len(msg.HTML)),
	}
	if msg.Attachment != nil {
		fields = append(fields,
			zap.String("attachment", msg.Attachment.Filename),
			zap.Int("attachmentBytes", len(msg.Attachment.Content)),
		)
	}
	n.logger.Info("booking notification (email disabled, logged only)", fields...)
	return nil
}
