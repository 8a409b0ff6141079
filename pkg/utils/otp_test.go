package utils

import "testing"

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP("jane@example.com-20260831120000")
	if len(otp) != 4 {
		t.Fatalf("expected a 4-digit code, got %q", otp)
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit in OTP %q", otp)
		}
	}

	// Same key always yields the same code; different keys should not.
	if again := GenerateOTP("jane@example.com-20260831120000"); again != otp {
		t.Fatalf("OTP not deterministic: %q vs %q", otp, again)
	}
	if other := GenerateOTP("jane@example.com-20260831120001"); other == otp {
		t.Logf("different keys produced equal codes %q (possible but unlikely)", otp)
	}
}
