package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

type patchDTO struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Ignored *string `json:"-"`
	Phone   *string `json:"phone,omitempty"`
}

func strPtr(s string) *string { return &s }

func TestUpdatesFromPtrDTO(t *testing.T) {
	dto := patchDTO{
		Name:    strPtr("Acme"),
		Ignored: strPtr("nope"),
		Phone:   strPtr("3001234567"),
	}
	got := UpdatesFromPtrDTO(&dto, map[string]string{"phone": "phone_number"})

	if len(got) != 2 {
		t.Fatalf("got %d updates, want 2: %v", len(got), got)
	}
	if got["name"] != "Acme" {
		t.Errorf("name = %v", got["name"])
	}
	if got["phone_number"] != "3001234567" {
		t.Errorf("phone_number = %v", got["phone_number"])
	}
	if _, ok := got["email"]; ok {
		t.Error("nil field email should be absent")
	}
	if _, ok := got["-"]; ok {
		t.Error("json \"-\" field should be absent")
	}
}

func TestNormalizePtrDTO(t *testing.T) {
	dto := patchDTO{Name: strPtr("  Acme  "), Phone: nil}
	NormalizePtrDTO(&dto)
	if *dto.Name != "Acme" {
		t.Errorf("Name = %q, want trimmed", *dto.Name)
	}
	if dto.Phone != nil {
		t.Error("nil field should stay nil")
	}
}

func TestNormalizeDTO(t *testing.T) {
	dto := struct {
		Name string
		SKU  string
	}{Name: " Widget ", SKU: "\tSKU-1 "}
	NormalizeDTO(&dto)
	if dto.Name != "Widget" || dto.SKU != "SKU-1" {
		t.Errorf("got %+v, want trimmed fields", dto)
	}
}

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"25", 10, 25},
		{" 25 ", 10, 25},
		{"", 10, 10},
		{"abc", 10, 10},
		{"-5", 10, 10},
		{"0", 10, 0},
	}
	for _, tc := range tests {
		if got := ParseIntDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestRoundMoneyAndPercent(t *testing.T) {
	gross := RoundMoney(decimal.RequireFromString("39.655"))
	if !gross.Equal(decimal.RequireFromString("39.66")) {
		t.Errorf("RoundMoney = %s", gross)
	}
	iva := Percent(decimal.NewFromInt(19))
	if !iva.Equal(decimal.RequireFromString("0.19")) {
		t.Errorf("Percent(19) = %s", iva)
	}
}

func TestRandomRef(t *testing.T) {
	ref := RandomRef(6)
	if len(ref) != 6 {
		t.Fatalf("len = %d", len(ref))
	}
	for _, c := range ref {
		if !containsRune(refAlphabet, c) {
			t.Errorf("unexpected char %q", c)
		}
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
