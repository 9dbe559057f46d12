package mailingservices

import (
	"testing"

	"github.com/garagego/api/config"
)

func TestInitUsesConfig(t *testing.T) {
	m := &Mailgun{}
	m.Init(&config.Config{
		MgDomain:      "mg.example.com",
		MailgunApiKey: "key-test",
		MgEmailFrom:   "no-reply@example.com",
	})

	if m.Client == nil {
		t.Fatal("Init left the client nil")
	}
	if m.Client.Domain() != "mg.example.com" {
		t.Errorf("domain = %q, want %q", m.Client.Domain(), "mg.example.com")
	}
	if m.From != "no-reply@example.com" {
		t.Errorf("from = %q, want %q", m.From, "no-reply@example.com")
	}

	// messages are built on the client, nothing is sent here
	message := m.Client.NewMessage(m.From, "subject", "body", "owner@example.com")
	if message == nil {
		t.Fatal("NewMessage returned nil")
	}
}
