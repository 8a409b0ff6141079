package utils

import "testing"

func TestSMTPConfigReadAtCallTime(t *testing.T) {
	// Values set after package init, the way godotenv.Load in main does it.
	t.Setenv("EMAIL_FROM", "noreply@estatelink.test")
	t.Setenv("EMAIL_PASSWORD", "secret")
	t.Setenv("SMTP_HOST", "smtp.estatelink.test")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("BASE_URL", "https://estatelink.test")

	cfg := smtpConfig()
	if cfg.from != "noreply@estatelink.test" || cfg.password != "secret" ||
		cfg.host != "smtp.estatelink.test" || cfg.port != "587" {
		t.Fatalf("smtpConfig did not pick up late environment: %+v", cfg)
	}
	if siteBaseURL() != "https://estatelink.test" {
		t.Fatalf("siteBaseURL did not pick up late environment: %q", siteBaseURL())
	}
}

func TestSMSConfigReadAtCallTime(t *testing.T) {
	t.Setenv("AT_USERNAME", "estatelink")
	t.Setenv("AT_API_KEY", "key")

	cfg := smsConfig()
	if cfg.username != "estatelink" || cfg.apiKey != "key" {
		t.Fatalf("smsConfig did not pick up late environment: %+v", cfg)
	}
}

func TestSendEmailRequiresConfiguration(t *testing.T) {
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("EMAIL_PASSWORD", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")

	if err := sendEmail([]string{"someone@example.com"}, "subject", "body"); err == nil {
		t.Fatal("expected an error with no mail configuration")
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"confirmed": "Confirmed",
		"cancelled": "Cancelled",
		"Completed": "Completed",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
