package security

import (
	"bytes"
	"testing"
)

func TestSealAndOpen(t *testing.T) {
	sealer, err := NewSealer("unit-test-pass")
	if err != nil {
		t.Fatal(err)
	}

	originalText := "Hello, World!"

	sealed, err := sealer.Seal([]byte(originalText))
	if err != nil {
		t.Fatal(err)
	}

	opened, err := sealer.Open(sealed)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal([]byte(originalText), opened) {
		t.Fatalf("Original text and opened text do not match. Original: %s, Opened: %s", originalText, string(opened))
	}
}

func TestOpenWithWrongPassphrase(t *testing.T) {
	sealer, err := NewSealer("pass-a")
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := sealer.Seal([]byte("payload"))
	if err != nil {
		t.Fatal(err)
	}

	other, err := NewSealer("pass-b")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Open(sealed); err == nil {
		t.Fatal("expected open with wrong passphrase to fail")
	}
}

func TestNewSealerEmptyPassphrase(t *testing.T) {
	if _, err := NewSealer(""); err == nil {
		t.Fatal("expected error for empty passphrase")
	}
}
