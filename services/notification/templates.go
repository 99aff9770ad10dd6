package notification

import (
	"fmt"
	"time"
)

// TemplateKey identifies one of the fixed billing mail templates.
type TemplateKey string

const (
	TemplateNewObligation      TemplateKey = "NEW_OBLIGATION"
	TemplateGentleReminder     TemplateKey = "GENTLE_REMINDER"
	TemplateLatePaymentWarning TemplateKey = "LATE_PAYMENT_WARNING"
)

// TemplateData carries the values interpolated into a billing mail.
type TemplateData struct {
	CustomerName string
	Amount       int64
	DueDate      time.Time
}

// RenderTemplate returns the subject, text body and HTML body for a
// billing template key.
func RenderTemplate(key TemplateKey, data TemplateData) (subject, text, html string, err error) {
	due := data.DueDate.Format("2 January 2006")

	switch key {
	case TemplateNewObligation:
		subject = "Your rent for this month is ready"
		text = fmt.Sprintf(
			"Hi %s,\n\nYour rent of Rs. %d for this month has been generated. Please pay on or before %s.\n\nThank you,\nStayEase",
			data.CustomerName, data.Amount, due)
		html = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your rent of <b>Rs. %d</b> for this month has been generated. Please pay on or before <b>%s</b>.</p><p>Thank you,<br/>StayEase</p>",
			data.CustomerName, data.Amount, due)
	case TemplateGentleReminder:
		subject = "Gentle reminder: rent due soon"
		text = fmt.Sprintf(
			"Hi %s,\n\nThis is a gentle reminder that your rent of Rs. %d is due on %s.\n\nThank you,\nStayEase",
			data.CustomerName, data.Amount, due)
		html = fmt.Sprintf(
			"<p>Hi %s,</p><p>This is a gentle reminder that your rent of <b>Rs. %d</b> is due on <b>%s</b>.</p><p>Thank you,<br/>StayEase</p>",
			data.CustomerName, data.Amount, due)
	case TemplateLatePaymentWarning:
		subject = "Late payment warning"
		text = fmt.Sprintf(
			"Hi %s,\n\nYour rent of Rs. %d was due on %s and is still unpaid. Please pay at the earliest to avoid late fees.\n\nThank you,\nStayEase",
			data.CustomerName, data.Amount, due)
		html = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your rent of <b>Rs. %d</b> was due on <b>%s</b> and is still unpaid. Please pay at the earliest to avoid late fees.</p><p>Thank you,<br/>StayEase</p>",
			data.CustomerName, data.Amount, due)
	default:
		err = fmt.Errorf("unknown mail template: %s", key)
	}
	return subject, text, html, err
}
