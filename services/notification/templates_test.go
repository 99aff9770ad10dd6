package notification

import (
	"strings"
	"testing"
	"time"
)

func TestRenderTemplateKnownKeys(t *testing.T) {
	data := TemplateData{
		CustomerName: "Asha",
		Amount:       6000,
		DueDate:      time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC),
	}

	for _, key := range []TemplateKey{TemplateNewObligation, TemplateGentleReminder, TemplateLatePaymentWarning} {
		subject, text, html, err := RenderTemplate(key, data)
		if err != nil {
			t.Fatalf("RenderTemplate(%s) error = %v", key, err)
		}
		if subject == "" {
			t.Errorf("RenderTemplate(%s) empty subject", key)
		}
		for _, body := range []string{text, html} {
			if !strings.Contains(body, "Asha") {
				t.Errorf("RenderTemplate(%s) body missing customer name", key)
			}
			if !strings.Contains(body, "6000") {
				t.Errorf("RenderTemplate(%s) body missing amount", key)
			}
			if !strings.Contains(body, "7 April 2024") {
				t.Errorf("RenderTemplate(%s) body missing due date", key)
			}
		}
	}
}

func TestRenderTemplateUnknownKey(t *testing.T) {
	if _, _, _, err := RenderTemplate("NOT_A_TEMPLATE", TemplateData{}); err == nil {
		t.Fatal("RenderTemplate() error = nil, want unknown key error")
	}
}

func TestBuildMessageMultipart(t *testing.T) {
	msg := buildMessage(Email{
		From:     "billing@stayease.in",
		FromName: "StayEase Billing",
		To:       "asha@example.com",
		Subject:  "Gentle reminder: rent due soon",
		Text:     "plain body",
		HTML:     "<p>html body</p>",
	})

	for _, want := range []string{
		"To: asha@example.com",
		"multipart/alternative",
		"plain body",
		"<p>html body</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("buildMessage() missing %q", want)
		}
	}
}

func TestBuildMessagePlainOnly(t *testing.T) {
	msg := buildMessage(Email{
		From:    "billing@stayease.in",
		To:      "asha@example.com",
		Subject: "hi",
		Text:    "plain body",
	})
	if strings.Contains(msg, "multipart") {
		t.Errorf("buildMessage() should not be multipart without HTML body:\n%s", msg)
	}
	if !strings.Contains(msg, "plain body") {
		t.Error("buildMessage() missing text body")
	}
}
