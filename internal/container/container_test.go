package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/byteptr/steel/internal/steelerr"
)

func writePlaintext(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write plaintext: %v", err)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	plaintext := []byte("this is the serialized record catalogue")
	writePlaintext(t, path, plaintext)

	if err := Encrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if err := Decrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read decrypted file: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestEncryptProducesExpectedMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	writePlaintext(t, path, []byte("hello"))

	if err := Encrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read container: %v", err)
	}

	if len(data) < headerLen+MACLen {
		t.Fatalf("container too short: %d bytes", len(data))
	}

	gotMagic := binary.LittleEndian.Uint32(data[magicOffset : magicOffset+MagicLen])
	if gotMagic != Magic {
		t.Errorf("magic = %#x; want %#x", gotMagic, Magic)
	}

	// Byte-exact per spec.md S1: 0x45 0x75 0x49 0x33 little-endian.
	wantBytes := []byte{0x45, 0x75, 0x49, 0x33}
	if !bytes.Equal(data[magicOffset:magicOffset+MagicLen], wantBytes) {
		t.Errorf("magic bytes = % x; want % x", data[magicOffset:magicOffset+MagicLen], wantBytes)
	}
}

func TestEncryptRejectsAlreadyEncrypted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	writePlaintext(t, path, []byte("hello"))

	if err := Encrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	before, _ := os.ReadFile(path)

	if err := Encrypt(path, []byte("W1")); !errors.Is(err, steelerr.ErrDatabaseEncrypted) {
		t.Fatalf("Encrypt on already-encrypted file: got %v, want ErrDatabaseEncrypted", err)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("rejected encrypt should not modify the file")
	}
}

func TestDecryptRejectsNonContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	writePlaintext(t, path, []byte("not a container at all"))

	if err := Decrypt(path, []byte("W1")); !errors.Is(err, steelerr.ErrNotEncrypted) {
		t.Fatalf("Decrypt on non-container: got %v, want ErrNotEncrypted", err)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	writePlaintext(t, path, []byte("secret record data"))

	if err := Encrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read container: %v", err)
	}

	if err := Decrypt(path, []byte("W2")); !errors.Is(err, steelerr.ErrBadPassphrase) {
		t.Fatalf("Decrypt with wrong passphrase: got %v, want ErrBadPassphrase", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read container after failed decrypt: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed decrypt should leave the container untouched")
	}

	if _, err := os.Stat(path + ".incomplete"); !os.IsNotExist(err) {
		t.Error("failed decrypt should not leave a temp file behind")
	}
}

func TestDecryptTamperedDetected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	writePlaintext(t, path, []byte("secret record data"))

	if err := Encrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read container: %v", err)
	}
	// Flip the last byte, inside the MAC tag itself.
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("rewrite tampered container: %v", err)
	}

	if err := Decrypt(path, []byte("W1")); !errors.Is(err, steelerr.ErrTampered) {
		t.Fatalf("Decrypt on tampered container: got %v, want ErrTampered", err)
	}

	if _, err := os.Stat(path + ".incomplete"); !os.IsNotExist(err) {
		t.Error("tampered decrypt should not leave a temp file behind")
	}
}

func TestEncryptIsNotDeterministic(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.db")
	pathB := filepath.Join(dir, "b.db")
	plaintext := []byte("identical plaintext payload")
	writePlaintext(t, pathA, plaintext)
	writePlaintext(t, pathB, plaintext)

	if err := Encrypt(pathA, []byte("W1")); err != nil {
		t.Fatalf("Encrypt A: %v", err)
	}
	if err := Encrypt(pathB, []byte("W1")); err != nil {
		t.Fatalf("Encrypt B: %v", err)
	}

	dataA, _ := os.ReadFile(pathA)
	dataB, _ := os.ReadFile(pathB)
	if bytes.Equal(dataA, dataB) {
		t.Error("two encryptions of the same plaintext under the same passphrase should differ (fresh iv/salt)")
	}
}

func TestDecryptSuccessLeavesNoTempFile(t *testing.T) {
	// A successful decrypt renames its ".incomplete" temp file over the
	// container, so no temp file may remain beside it afterwards.
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	writePlaintext(t, path, []byte("payload"))
	if err := Encrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if err := Decrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if _, err := os.Stat(path + ".incomplete"); !os.IsNotExist(err) {
		t.Error("successful decrypt should not leave a temp file behind")
	}
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.db")
	writePlaintext(t, path, []byte{})

	if err := Encrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Encrypt empty plaintext: %v", err)
	}
	if err := Decrypt(path, []byte("W1")); err != nil {
		t.Fatalf("Decrypt empty plaintext: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty plaintext round trip, got %d bytes", len(got))
	}
}
