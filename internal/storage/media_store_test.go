package storage

import (
	"strings"
	"testing"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"bill.pdf", true},
		{"readings.csv", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"scan.png", true},
		{"invoice.docx", false},
		{"script.sh", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := AllowedFile(tt.filename); got != tt.want {
			t.Errorf("AllowedFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("bill.pdf")
	b := UniqueName("bill.pdf")

	if a == b {
		t.Fatal("two generated names collided")
	}
	if !strings.HasSuffix(a, "_bill.pdf") {
		t.Errorf("expected sanitized original name suffix, got %q", a)
	}
	// 32 hex chars + separator + original name
	if len(a) != 32+1+len("bill.pdf") {
		t.Errorf("unexpected name length for %q", a)
	}
}

func TestUniqueNameStripsPathComponents(t *testing.T) {
	got := UniqueName("../../etc/passwd.png")
	if strings.Contains(got, "/") || strings.Contains(got, "..") {
		t.Errorf("generated name retains path components: %q", got)
	}
}
