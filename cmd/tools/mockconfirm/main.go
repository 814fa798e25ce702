// mockconfirm sends a signed payment confirmation to a running instance, the
// way the frontend does after Razorpay checkout. Useful for exercising the
// verify endpoint without real payments.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Shoury7/EzyStayBackend/internal/modules/payments"
)

func main() {
	url := flag.String("url", "http://localhost:8080/api/payments/verify", "Verify URL")
	secret := flag.String("secret", os.Getenv("RAZORPAY_KEY_SECRET"), "Razorpay key secret")
	orderRef := flag.String("order-ref", "order_mock1", "Razorpay order id")
	paymentRef := flag.String("payment-ref", "pay_mock1", "Razorpay payment id")
	email := flag.String("email", "guest@example.com", "Payer email")
	listing := flag.String("listing", "", "Listing id (required)")
	amount := flag.Int64("amount", 50000, "Amount in paise")
	tamper := flag.Bool("tamper", false, "Send a bad signature instead")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: secret not provided and RAZORPAY_KEY_SECRET not set")
		os.Exit(1)
	}
	if *listing == "" {
		fmt.Fprintln(os.Stderr, "Error: -listing is required")
		os.Exit(1)
	}

	sig := payments.Sign(*orderRef, *paymentRef, []byte(*secret))
	if *tamper {
		sig = "deadbeef" + sig[8:]
	}

	body, _ := json.Marshal(map[string]any{
		"razorpay_order_id":   *orderRef,
		"razorpay_payment_id": *paymentRef,
		"razorpay_signature":  sig,
		"email":               *email,
		"listing":             *listing,
		"amount":              *amount,
	})

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(*url, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("HTTP %d\n%s\n", resp.StatusCode, out)
}
