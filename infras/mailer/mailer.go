package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/shared/constant"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mailersend/mailersend-go"
	"github.com/rs/zerolog/log"
)

const (
	headerMessageID = "X-Message-Id"
	errorBodyLimit  = 512

	otelAttrRecipient = "recipient"
)

var (
	ErrDisabled     = errors.New("mailer disabled, missing api key or sender")
	ErrNoRecipient  = errors.New("recipient email is required")
	ErrSendRejected = errors.New("mailersend rejected the message")
)

type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
	Enabled() bool
}

type mailerImpl struct {
	client *mailersend.Mailersend
	from   mailersend.From
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	m := &mailerImpl{
		from: mailersend.From{
			Name:  cfg.External.MailerSend.FromName,
			Email: cfg.External.MailerSend.FromEmail,
		},
		otel: otl,
	}

	if cfg.External.MailerSend.APIKey != "" && cfg.External.MailerSend.FromEmail != "" {
		m.client = mailersend.NewMailersend(cfg.External.MailerSend.APIKey)
	} else {
		log.Warn().Msg("mailersend not configured, emails will not be sent")
	}

	return m
}

func (m *mailerImpl) Enabled() bool {
	return m.client != nil
}

func (m *mailerImpl) Send(ctx context.Context, msg Message) (messageID string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !m.Enabled() {
		return constant.Empty, ErrDisabled
	}

	if strings.TrimSpace(msg.ToEmail) == "" {
		return constant.Empty, ErrNoRecipient
	}

	scope.SetAttribute(otelAttrRecipient, msg.ToEmail)

	message := m.client.Email.NewMessage()
	message.SetFrom(m.from)
	message.SetRecipients([]mailersend.Recipient{{Name: msg.ToName, Email: msg.ToEmail}})
	message.SetSubject(msg.Subject)

	if strings.TrimSpace(msg.Text) != "" {
		message.SetText(msg.Text)
	}

	if strings.TrimSpace(msg.HTML) != "" {
		message.SetHTML(msg.HTML)
	}

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		log.Error().Err(err).Msg("failed to send email")

		return constant.Empty, fmt.Errorf("failed to send email: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))

		return constant.Empty, fmt.Errorf("%w: status=%d body=%s", ErrSendRejected, res.StatusCode, strings.TrimSpace(string(body)))
	}

	return res.Header.Get(headerMessageID), nil
}
