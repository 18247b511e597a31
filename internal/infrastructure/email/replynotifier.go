package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

// ReplyNotifier emails a ticket owner when an operator replies. Delivery is
// best effort: the caller logs failures and never fails the request over
// them.
type ReplyNotifier struct {
	cfg    *config.EmailConfig
	logger logger.Interface
}

func NewReplyNotifier(cfg *config.EmailConfig, log logger.Interface) *ReplyNotifier {
	return &ReplyNotifier{cfg: cfg, logger: log}
}

// NotifyOperatorReply sends the "an operator replied to your ticket" mail.
func (n *ReplyNotifier) NotifyOperatorReply(toAddress, toName string, ticketID uint, body string) error {
	if !n.cfg.Enabled {
		return nil
	}
	if toAddress == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromAddress, n.cfg.FromName)
	m.SetAddressHeader("To", toAddress, toName)
	m.SetHeader("Subject", fmt.Sprintf("New reply on ticket #%d", ticketID))
	m.SetBody("text/plain", fmt.Sprintf(
		"Support replied to your ticket #%d:\n\n%s\n\nOpen the helpdesk to respond.", ticketID, body))

	d := gomail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reply notification: %w", err)
	}

	n.logger.Infow("reply notification sent", "ticket_id", ticketID, "to", toAddress)
	return nil
}
