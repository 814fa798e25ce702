package mailer

import (
	"strings"
	"testing"
)

func TestBuildMIMEMessage(t *testing.T) {
	tests := []struct {
		name     string
		email    Email
		wantErr  bool
		contains []string
	}{
		{
			name: "text and html",
			email: Email{
				From: "noreply@ezystay.com", FromName: "EzyStay",
				To:      []string{"guest@example.com"},
				Subject: "Booking Confirmed", TextBody: "confirmed", HTMLBody: "<p>confirmed</p>",
			},
			contains: []string{
				"From: EzyStay <noreply@ezystay.com>",
				"To: guest@example.com",
				"Subject: Booking Confirmed",
				"multipart/alternative",
				"Content-Type: text/plain; charset=utf-8",
				"Content-Type: text/html; charset=utf-8",
			},
		},
		{
			name: "text only",
			email: Email{
				From: "noreply@ezystay.com", To: []string{"guest@example.com"},
				Subject: "Hi", TextBody: "plain",
			},
			contains: []string{"Content-Type: text/plain; charset=utf-8", "plain"},
		},
		{
			name: "html only",
			email: Email{
				From: "noreply@ezystay.com", To: []string{"guest@example.com"},
				Subject: "Hi", HTMLBody: "<b>hi</b>",
			},
			contains: []string{"Content-Type: text/html; charset=utf-8", "<b>hi</b>"},
		},
		{
			name:    "no recipients",
			email:   Email{From: "noreply@ezystay.com", Subject: "Hi", TextBody: "x"},
			wantErr: true,
		},
		{
			name:    "no from",
			email:   Email{To: []string{"guest@example.com"}, Subject: "Hi", TextBody: "x"},
			wantErr: true,
		},
		{
			name:    "no body",
			email:   Email{From: "noreply@ezystay.com", To: []string{"guest@example.com"}, Subject: "Hi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := buildMIMEMessage(tt.email, "ezystay.com")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("buildMIMEMessage() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildMIMEMessage() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("message missing %q\n%s", want, msg)
				}
			}
		})
	}
}

func TestFormatAddress(t *testing.T) {
	if got := formatAddress("", "a@b.com"); got != "a@b.com" {
		t.Errorf("formatAddress() = %q, want bare address", got)
	}
	if got := formatAddress("EzyStay", "a@b.com"); got != "EzyStay <a@b.com>" {
		t.Errorf("formatAddress() = %q", got)
	}
	got := formatAddress("Çağrı", "a@b.com")
	if !strings.HasPrefix(got, "=?utf-8?q?") {
		t.Errorf("formatAddress() non-ascii name not Q-encoded: %q", got)
	}
}
