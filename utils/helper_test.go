package utils_test

import (
	"testing"

	"github.com/nusratfurniture/workshop_backend/utils"
)

func TestFormatPKR(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		950:     "950",
		9500:    "9,500",
		125000:  "125,000",
		1234500: "1,234,500",
		-4500:   "-4,500",
	}
	for amount, want := range cases {
		if got := utils.FormatPKR(amount); got != want {
			t.Errorf("FormatPKR(%d) = %q, want %q", amount, got, want)
		}
	}
}

func TestLowerTrim(t *testing.T) {
	if got := utils.LowerTrim("  Waseem "); got != "waseem" {
		t.Fatalf("LowerTrim = %q", got)
	}
}

func TestNormalizePhoneNumberKeepsFreeFormInput(t *testing.T) {
	// Historical rows carry notes like "ask at the shop"; normalization
	// must not mangle them.
	if got := utils.NormalizePhoneNumber(" ask at the shop "); got != "ask at the shop" {
		t.Fatalf("NormalizePhoneNumber = %q", got)
	}
	if got := utils.NormalizePhoneNumber(""); got != "" {
		t.Fatalf("NormalizePhoneNumber blank = %q", got)
	}
}

func TestNormalizePhoneNumberE164(t *testing.T) {
	got := utils.NormalizePhoneNumber("0300 1234567")
	if got != "+923001234567" {
		t.Fatalf("NormalizePhoneNumber = %q", got)
	}
}
