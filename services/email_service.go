package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"shipproc/config"
	"shipproc/models"
)

// EmailService sends procurement notifications over SMTP. The SMTP
// endpoint and credentials come from the environment; when SMTP_HOST is
// unset the service is disabled and every Send becomes a no-op so that
// local development does not need a mail relay.
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewEmailService creates an email service from environment configuration
func NewEmailService() *EmailService {
	return &EmailService{
		host:     config.Getenv("SMTP_HOST", ""),
		port:     config.Getenv("SMTP_PORT", "587"),
		username: config.Getenv("SMTP_USERNAME", ""),
		password: config.Getenv("SMTP_PASSWORD", ""),
		from:     config.Getenv("SMTP_FROM", "procurement@shipproc.local"),
	}
}

// Enabled reports whether an SMTP relay is configured.
func (es *EmailService) Enabled() bool {
	return es.host != ""
}

// SendQuoteAwardedEmail notifies a vendor contact that their quote won
// the comparison for an RFQ.
func (es *EmailService) SendQuoteAwardedEmail(vendor *models.Vendor, rfq *models.RFQ, quote *models.Quote) error {
	if vendor.Email == "" {
		return fmt.Errorf("vendor %s has no email on file", vendor.Name)
	}

	subject := fmt.Sprintf("Quote awarded - %s", rfq.Reference)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your quote for %s (%s) has been accepted.\n\n"+
			"Vessel: %s\n"+
			"Delivery location: %s\n"+
			"Quoted amount: %.2f %s\n\n"+
			"A purchase order will follow shortly.\n",
		vendor.Name, rfq.Title, rfq.Reference,
		rfq.VesselName, rfq.DeliveryLocation,
		quote.TotalAmount, quote.Currency,
	)

	return es.send(vendor.Email, subject, body)
}

// SendPurchaseOrderEmail notifies a vendor contact that a purchase
// order has been issued against their accepted quote.
func (es *EmailService) SendPurchaseOrderEmail(vendor *models.Vendor, po *models.PurchaseOrder, rfq *models.RFQ) error {
	if vendor.Email == "" {
		return fmt.Errorf("vendor %s has no email on file", vendor.Name)
	}

	subject := fmt.Sprintf("Purchase order issued - %s", po.PONumber)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Purchase order %s has been issued for %s (%s).\n\n"+
			"Vessel: %s\n"+
			"Order total: %.2f %s\n\n"+
			"Please acknowledge receipt through the vendor portal.\n",
		vendor.Name, po.PONumber, rfq.Title, rfq.Reference,
		rfq.VesselName, po.TotalAmount, po.Currency,
	)

	return es.send(vendor.Email, subject, body)
}

// send delivers a plain-text message to a single recipient.
func (es *EmailService) send(to, subject, body string) error {
	if !es.Enabled() {
		return nil
	}

	auth := smtp.PlainAuth("", es.username, es.password, es.host)

	headers := []string{
		"From: " + es.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	return smtp.SendMail(es.host+":"+es.port, auth, es.from, []string{to}, msg)
}
