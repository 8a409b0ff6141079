package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type smsSettings struct {
	username string
	apiKey   string
}

// smsConfig reads the gateway credentials at send time so values loaded from
// .env in main are picked up.
func smsConfig() smsSettings {
	return smsSettings{
		username: os.Getenv("AT_USERNAME"),
		apiKey:   os.Getenv("AT_API_KEY"),
	}
}

func sendSMS(message string, recipients []string) error {
	cfg := smsConfig()
	if cfg.username == "" {
		return fmt.Errorf("africa's talking username not set")
	}
	if cfg.apiKey == "" {
		return fmt.Errorf("africa's talking API key not set")
	}

	baseURL := "https://api.africastalking.com/version1/messaging"

	// Prepare the form data
	data := url.Values{}
	data.Set("username", cfg.username)
	data.Set("to", strings.Join(recipients, ","))
	data.Set("message", message)

	// Create the request
	req, err := http.NewRequest("POST", baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	// Set headers
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", cfg.apiKey)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send SMS: status code %d", resp.StatusCode)
	}

	log.WithField("recipients", len(recipients)).Info("SMS sent")
	return nil
}

func SendPasswordResetSMS(phone, otp string) error {
	msg := fmt.Sprintf("Your EstateLink password reset code is %s. It expires in 15 minutes.", otp)
	return sendSMS(msg, []string{phone})
}

// SendBookingRequestSMS notifies a vendor of a new viewing request.
func SendBookingRequestSMS(vendorPhone, listingTitle, clientName string) error {
	msg := fmt.Sprintf("%s has requested a viewing of %s. Log in to EstateLink to confirm or decline.",
		clientName, listingTitle)
	return sendSMS(msg, []string{vendorPhone})
}

// SendBookingStatusSMS notifies a client that their viewing changed status.
func SendBookingStatusSMS(clientPhone, listingTitle, status string) error {
	msg := fmt.Sprintf("Your EstateLink viewing of %s is now %s.", listingTitle, status)
	return sendSMS(msg, []string{clientPhone})
}
