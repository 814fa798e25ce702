package mailer

import "context"

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string // optional: "EzyStay"
	From     string // required: "no-reply@ezystay.local"

	To []string

	Subject string

	TextBody string
	HTMLBody string

	Headers map[string]string // optional extra headers
}
