package container

import (
	"io"
	"os"

	"github.com/byteptr/steel/internal/crypto"
	"github.com/byteptr/steel/internal/fsops"
	"github.com/byteptr/steel/internal/steelerr"
)

// Decrypt transforms the container at path back into its plaintext payload
// under the same passphrase, verifying the passphrase and then the MAC
// before any ciphertext byte is touched. A bad passphrase or a failed MAC
// leaves path exactly as it was and produces no output file.
func Decrypt(path string, passphrase []byte) error {
	ok, err := IsContainer(path)
	if err != nil {
		return steelerr.Io("decrypt: probe", err)
	}
	if !ok {
		return steelerr.ErrNotEncrypted
	}

	info, err := os.Stat(path)
	if err != nil {
		return steelerr.Io("stat", err)
	}
	if info.Size() < int64(minFileSize) {
		return steelerr.ErrTampered
	}

	f, err := os.Open(path)
	if err != nil {
		return steelerr.Io("open container", err)
	}
	defer f.Close()

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(f, header); err != nil {
		return steelerr.Io("read header", err)
	}

	verifier := string(header[verifierOffset : verifierOffset+VerifierLen])
	iv := header[ivOffset : ivOffset+IVLen]
	salt := header[saltOffset : saltOffset+VerifierLen]

	ctx := newOperationContext(passphrase)
	defer ctx.Close()

	// Step 3: password verification precedes every later step. No MAC
	// computation and no decryption happens before this check passes.
	if err := crypto.VerifyPassphrase(verifier, ctx.Passphrase); err != nil {
		return steelerr.ErrBadPassphrase
	}

	key, err := crypto.DeriveKey(ctx.Passphrase, salt)
	if err != nil {
		return steelerr.Crypto("derive key", err)
	}
	ctx.Key = key

	bodyLen := info.Size() - int64(MACLen)

	tag := make([]byte, MACLen)
	if _, err := f.ReadAt(tag, bodyLen); err != nil {
		return steelerr.Io("read tag", err)
	}

	computed, err := computeMAC(f, key, bodyLen)
	if err != nil {
		return err
	}

	// Step 5: MAC verification precedes any plaintext reaching disk.
	if !crypto.VerifyMAC(tag, computed) {
		return steelerr.ErrTampered
	}

	tempPath := fsops.TempSibling(path, ".incomplete")
	if err := decryptPayloadToTemp(f, tempPath, key, iv, int64(headerLen), bodyLen); err != nil {
		fsops.RemoveIfExists(tempPath)
		return err
	}

	if err := fsops.ReplaceWithTemp(path, tempPath); err != nil {
		return steelerr.Io("finalize decrypt", err)
	}
	return nil
}

// computeMAC re-derives the authentication tag over bytes [0, bodyLen) of
// f, which is the same range the encrypt side MACed.
func computeMAC(f *os.File, key []byte, bodyLen int64) ([]byte, error) {
	mac, err := crypto.NewMAC(key)
	if err != nil {
		return nil, steelerr.Crypto("init mac", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, steelerr.Io("seek", err)
	}
	if _, err := io.CopyN(mac, f, bodyLen); err != nil {
		return nil, steelerr.Io("read body", err)
	}
	return mac.Sum(nil), nil
}

// decryptPayloadToTemp streams the ciphertext range [start, end) of f
// through the Serpent-CFB decrypt stream into tempPath.
func decryptPayloadToTemp(f *os.File, tempPath string, key, iv []byte, start, end int64) error {
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return steelerr.Io("seek payload", err)
	}

	out, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return steelerr.Io("create temp", err)
	}
	defer out.Close()

	stream, err := crypto.NewDecryptStream(key, iv)
	if err != nil {
		return steelerr.Crypto("init cipher", err)
	}

	remaining := end - start
	buf := make([]byte, 64*1024)
	for remaining > 0 {
		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}
		n, err := io.ReadFull(f, buf[:chunk])
		if err != nil {
			return steelerr.Io("read ciphertext", err)
		}
		plaintext := make([]byte, n)
		stream.XORKeyStream(plaintext, buf[:n])
		if _, err := out.Write(plaintext); err != nil {
			return steelerr.Io("write plaintext", err)
		}
		remaining -= int64(n)
	}

	return steelerr.Io("sync temp", out.Sync())
}
