package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateRegister           = "register"
	templateResetPassword      = "reset-password"
	templateClientApproved     = "client-approved"
	templateMembershipReminder = "membership-reminder"
	templateMembershipClient   = "membership-client"
	templateMembershipArtist   = "membership-artist"
	templateContactArtist      = "contact-artist"
	templateContactCopy        = "contact-copy"
)

var templateNames = []string{
	templateRegister, templateResetPassword, templateClientApproved, templateMembershipReminder,
	templateMembershipClient, templateMembershipArtist, templateContactArtist, templateContactCopy,
}

type Mailer interface {
	SendRegistration(ctx context.Context, user domain.User) error
	SendPasswordReset(ctx context.Context, user domain.User, password string) error
	SendClientApproved(ctx context.Context, user domain.User, client domain.Client) error
	SendMembershipReminder(ctx context.Context, reminder domain.MembershipReminder) error
	SendMembershipConfirmation(ctx context.Context, user domain.User, membership domain.Membership, client domain.Client) error
	SendContactMessage(ctx context.Context, contact domain.ContactMessage) error
	SendContactCopy(ctx context.Context, contact domain.ContactMessage) error
}

// SendFunc delivers a composed message.
type SendFunc func(msg *gomail.Message) error

type MailerImpl struct {
	sender    string
	publicURL string
	templates map[string]*template.Template
	send      SendFunc
}

// CreateNewMailer delivers through the configured SMTP server. Without an
// SMTP host messages are logged and dropped.
func CreateNewMailer(conf *config.Config) (*MailerImpl, error) {
	smtp := conf.SMTPConfig
	if smtp.Host == "" {
		return CreateNewMailerWithSender(smtp.Sender, conf.PublicURL, dropMessage)
	}

	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	send := func(msg *gomail.Message) error {
		return dialer.DialAndSend(msg)
	}

	return CreateNewMailerWithSender(smtp.Sender, conf.PublicURL, send)
}

func dropMessage(msg *gomail.Message) error {
	log.Info().Str("component", "Mailer").Strs("to", msg.GetHeader("To")).
		Strs("subject", msg.GetHeader("Subject")).Msg("smtp disabled, dropping email")
	return nil
}

func CreateNewMailerWithSender(sender, publicURL string, send SendFunc) (*MailerImpl, error) {
	templates := make(map[string]*template.Template)
	for _, name := range templateNames {
		tmpl, err := template.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &MailerImpl{
		sender:    sender,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		templates: templates,
		send:      send,
	}, nil
}

func (m *MailerImpl) SendRegistration(ctx context.Context, user domain.User) error {
	return m.deliver(ctx, user.Email, templateRegister, map[string]interface{}{
		"User": user,
	})
}

func (m *MailerImpl) SendPasswordReset(ctx context.Context, user domain.User, password string) error {
	return m.deliver(ctx, user.Email, templateResetPassword, map[string]interface{}{
		"User":     user,
		"Password": password,
	})
}

func (m *MailerImpl) SendClientApproved(ctx context.Context, user domain.User, client domain.Client) error {
	return m.deliver(ctx, user.Email, templateClientApproved, map[string]interface{}{
		"User":   user,
		"Client": client,
	})
}

func (m *MailerImpl) SendMembershipReminder(ctx context.Context, reminder domain.MembershipReminder) error {
	return m.deliver(ctx, reminder.Email, templateMembershipReminder, map[string]interface{}{
		"Reminder":   reminder,
		"ExpireDate": time.UnixMilli(reminder.ExpireAt).UTC().Format("2006-01-02"),
	})
}

// SendMembershipConfirmation thanks the user for a new membership. client is
// the client profile of the user, zero when there is none yet.
func (m *MailerImpl) SendMembershipConfirmation(ctx context.Context, user domain.User, membership domain.Membership, client domain.Client) error {
	name := templateMembershipArtist
	if membership.Type == domain.MembershipTypeClient {
		name = templateMembershipClient
	}

	return m.deliver(ctx, user.Email, name, map[string]interface{}{
		"User":       user,
		"Client":     client,
		"ExpireDate": time.UnixMilli(membership.ExpireAt).UTC().Format("2006-01-02"),
	})
}

// SendContactMessage forwards the message to the owner of the artist profile.
// Replies go straight to the sender.
func (m *MailerImpl) SendContactMessage(ctx context.Context, contact domain.ContactMessage) error {
	return m.deliver(ctx, contact.Recipient.Email, templateContactArtist, map[string]interface{}{
		"Contact": contact,
	}, withReplyTo(contact.Sender.Email))
}

func (m *MailerImpl) SendContactCopy(ctx context.Context, contact domain.ContactMessage) error {
	return m.deliver(ctx, contact.Sender.Email, templateContactCopy, map[string]interface{}{
		"Contact": contact,
	})
}

type messageOption func(msg *gomail.Message)

func withReplyTo(address string) messageOption {
	return func(msg *gomail.Message) {
		msg.SetHeader("Reply-To", address)
	}
}

func (m *MailerImpl) deliver(ctx context.Context, to, name string, data map[string]interface{}, opts ...messageOption) error {
	data["PublicURL"] = m.publicURL

	var subject, body bytes.Buffer
	tmpl := m.templates[name]
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return fmt.Errorf("rendering %s subject: %w", name, err)
	}
	if err := tmpl.ExecuteTemplate(&body, "body", data); err != nil {
		return fmt.Errorf("rendering %s body: %w", name, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/html", body.String())
	for _, opt := range opts {
		opt(msg)
	}

	if err := m.send(msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Mailer").Str("template", name).Msg("")
		return fmt.Errorf("sending %s email: %w", name, err)
	}

	return nil
}
