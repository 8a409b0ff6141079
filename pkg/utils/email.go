package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const companyName = "EstateLink Limited"

type smtpSettings struct {
	from     string
	password string
	host     string
	port     string
}

// smtpConfig reads the mail settings at send time so values loaded from .env
// in main are picked up.
func smtpConfig() smtpSettings {
	return smtpSettings{
		from:     os.Getenv("EMAIL_FROM"),
		password: os.Getenv("EMAIL_PASSWORD"),
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
	}
}

func siteBaseURL() string {
	return os.Getenv("BASE_URL")
}

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #1a6fb0; margin: 0;">EstateLink</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 EstateLink Limited. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sendEmail(to []string, subject, body string) error {
	cfg := smtpConfig()
	if cfg.from == "" || cfg.password == "" || cfg.host == "" || cfg.port == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, cfg.from)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "EstateLink-Mailer"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", cfg.from, cfg.password, cfg.host)

	// Send email
	err := smtp.SendMail(cfg.host+":"+cfg.port, auth, cfg.from, to, []byte(message))
	if err != nil {
		log.WithError(err).Error("Failed to send email")
		return err
	}

	log.WithField("recipients", to).Info("Email sent")
	return nil
}

func SendPasswordResetEmail(email, otp string) error {
	subject := "Password Reset Code - EstateLink"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Password Reset</h1>
					<p>Hello,</p>
					<p>We received a request to reset your EstateLink password. Use the code below to continue:</p>
					<div style="text-align: center; margin: 30px 0;">
						<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #1a6fb0;">%s</span>
					</div>
					<p>The code expires in 15 minutes. If you did not request a reset, you can ignore this email.</p>
					<p>Best regards,<br>The EstateLink Team</p>
				</div>`+emailFooter,
		otp)

	return sendEmail([]string{email}, subject, body)
}

func SendEmailVerificationOTP(email, otp string) error {
	subject := "Verify Your Email - EstateLink"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Verify Your Email</h1>
					<p>Hello,</p>
					<p>Welcome to EstateLink! Enter the code below to verify your email address:</p>
					<div style="text-align: center; margin: 30px 0;">
						<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #1a6fb0;">%s</span>
					</div>
					<p>The code expires in 15 minutes.</p>
					<p>Best regards,<br>The EstateLink Team</p>
				</div>`+emailFooter,
		otp)

	return sendEmail([]string{email}, subject, body)
}

// SendBookingRequestEmail notifies a vendor of a new viewing request.
func SendBookingRequestEmail(vendorEmail, listingTitle, clientName string, date time.Time, timeSlot string) error {
	subject := "New Viewing Request - EstateLink"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Viewing Request</h1>
					<p>Hello,</p>
					<p><strong>%s</strong> has requested a viewing of <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong>.</p>
					<p>Please log in to your EstateLink account to confirm or decline this request.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/dashboard/bookings" style="background-color: #1a6fb0; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Manage Bookings</a>
					</div>
					<p>Best regards,<br>The EstateLink Team</p>
				</div>`+emailFooter,
		clientName, listingTitle, date.Format("Monday, 2 January 2006"), timeSlot, siteBaseURL())

	return sendEmail([]string{vendorEmail}, subject, body)
}

// SendBookingStatusEmail notifies a client that their viewing request changed
// status (confirmed, cancelled, completed).
func SendBookingStatusEmail(clientEmail, listingTitle, status string, date time.Time, timeSlot string) error {
	subject := fmt.Sprintf("Viewing %s - EstateLink", titleCase(status))
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Viewing %s</h1>
					<p>Hello,</p>
					<p>Your viewing of <strong>%s</strong> scheduled for <strong>%s</strong> at <strong>%s</strong> is now <strong>%s</strong>.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/bookings" style="background-color: #1a6fb0; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View Your Bookings</a>
					</div>
					<p>Best regards,<br>The EstateLink Team</p>
				</div>`+emailFooter,
		titleCase(status), listingTitle, date.Format("Monday, 2 January 2006"), timeSlot, status, siteBaseURL())

	return sendEmail([]string{clientEmail}, subject, body)
}

// SendListingModerationEmail tells a vendor the outcome of listing review.
func SendListingModerationEmail(vendorEmail, listingTitle string, approved bool) error {
	outcome := "Approved"
	detail := "Your listing is now live and visible to buyers and renters."
	if !approved {
		outcome = "Rejected"
		detail = "Your listing did not pass review. Please check our listing guidelines, update it and resubmit."
	}

	subject := fmt.Sprintf("Listing %s - EstateLink", outcome)
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Listing %s</h1>
					<p>Hello,</p>
					<p>Your listing <strong>%s</strong> has been reviewed. %s</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/dashboard/listings" style="background-color: #1a6fb0; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View Your Listings</a>
					</div>
					<p>Best regards,<br>The EstateLink Team</p>
				</div>`+emailFooter,
		outcome, listingTitle, detail, siteBaseURL())

	return sendEmail([]string{vendorEmail}, subject, body)
}
