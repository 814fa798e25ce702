package email

import (
	"context"

	"github.com/Shoury7/EzyStayBackend/internal/mailer"
)

// Notifier sends the booking confirmation mail. It satisfies the bookings
// package's Notifier port.
type Notifier struct {
	mail     mailer.Service
	from     string
	fromName string
}

func NewNotifier(mail mailer.Service, from, fromName string) *Notifier {
	return &Notifier{mail: mail, from: from, fromName: fromName}
}

func (n *Notifier) SendConfirmation(ctx context.Context, toEmail, paymentRef string) error {
	subject := "Booking Confirmed - EzyStay"
	textBody := "Your payment was verified and your booking is confirmed.\n\n" +
		"Payment reference: " + paymentRef + "\n\nThank you for booking with EzyStay!"

	htmlBody := `
<html>
  <body style="font-family: sans-serif;">
    <h2>Booking Confirmed</h2>
    <p>Your payment was verified and your booking is confirmed.</p>
    <p><strong>Payment reference:</strong> ` + paymentRef + `</p>
    <p>Thank you for booking with EzyStay!</p>
    <p>The EzyStay Team</p>
  </body>
</html>
`

	return n.mail.Send(ctx, mailer.Email{
		FromName: n.fromName,
		From:     n.from,
		To:       []string{toEmail},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
}
