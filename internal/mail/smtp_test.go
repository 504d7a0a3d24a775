package mail

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestSMTPSenderBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 2525, From: "noreply@media.local"})
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := s.Send(context.Background(), Message{
		To:            "ada@example.com",
		RecipientName: "Ada",
		ExpiryDate:    "2025-06-03",
		DaysRemaining: 2,
		AppTitle:      "Mediaserver",
		AppURL:        "https://media.local",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAddr != "mail.local:2525" {
		t.Fatalf("addr = %s", gotAddr)
	}
	if gotFrom != "noreply@media.local" {
		t.Fatalf("from = %s", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ada@example.com" {
		t.Fatalf("to = %v", gotTo)
	}

	body := string(gotMsg)
	for _, want := range []string{
		"Subject: Mediaserver: your access expires soon",
		"Hi Ada,",
		"expires on 2025-06-03 (2 day(s) remaining)",
		"https://media.local",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("message missing %q:\n%s", want, body)
		}
	}
}

func TestSMTPSenderRejectsEmptyRecipient(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 25})
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be called")
		return nil
	}
	if err := s.Send(context.Background(), Message{}); err == nil {
		t.Fatal("expected error for empty recipient")
	}
}
