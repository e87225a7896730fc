package container

import (
	"io"
	"os"

	"github.com/byteptr/steel/internal/crypto"
	"github.com/byteptr/steel/internal/fsops"
	"github.com/byteptr/steel/internal/steelerr"
)

// Encrypt transforms the plaintext file at path into a Steel container
// under the same passphrase, writing through a ".incomplete" sibling and
// renaming it over path only once every byte has been written and synced.
// It refuses to run if path already looks like a container.
func Encrypt(path string, passphrase []byte) error {
	alreadyEncrypted, err := IsContainer(path)
	if err != nil {
		return steelerr.Io("encrypt: probe", err)
	}
	if alreadyEncrypted {
		return steelerr.ErrDatabaseEncrypted
	}

	ctx := newOperationContext(passphrase)
	defer ctx.Close()

	verifier, err := crypto.Hash(ctx.Passphrase)
	if err != nil {
		return steelerr.Crypto("hash passphrase", err)
	}

	// The verifier blob doubles as the Kdf salt, per the format's
	// single-salt-material design; it is also written a second time,
	// verbatim, later in the header.
	salt := []byte(verifier)

	key, err := crypto.DeriveKey(ctx.Passphrase, salt)
	if err != nil {
		return steelerr.Crypto("derive key", err)
	}
	ctx.Key = key

	iv, err := crypto.RandomBytes(IVLen)
	if err != nil {
		return steelerr.Crypto("generate iv", err)
	}

	tempPath := fsops.TempSibling(path, ".incomplete")
	if err := encryptToTemp(path, tempPath, []byte(verifier), iv, salt, key); err != nil {
		fsops.RemoveIfExists(tempPath)
		return err
	}

	if err := fsops.ReplaceWithTemp(path, tempPath); err != nil {
		return steelerr.Io("finalize encrypt", err)
	}
	return nil
}

// encryptToTemp streams the header and the encrypted payload into tempPath,
// accumulating the MAC over every byte written in order: verifier, magic,
// iv, salt copy, ciphertext.
func encryptToTemp(srcPath, tempPath string, verifier, iv, salt, key []byte) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return steelerr.Io("open plaintext", err)
	}
	defer src.Close()

	out, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return steelerr.Io("create temp", err)
	}
	defer out.Close()

	mac, err := crypto.NewMAC(key)
	if err != nil {
		return steelerr.Crypto("init mac", err)
	}

	writeTagged := func(b []byte) error {
		if _, err := out.Write(b); err != nil {
			return steelerr.Io("write header", err)
		}
		mac.Write(b)
		return nil
	}

	for _, field := range [][]byte{verifier, magicBytes(), iv, salt} {
		if err := writeTagged(field); err != nil {
			return err
		}
	}

	stream, err := crypto.NewEncryptStream(key, iv)
	if err != nil {
		return steelerr.Crypto("init cipher", err)
	}

	buf := make([]byte, 64*1024)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			ciphertext := make([]byte, n)
			stream.XORKeyStream(ciphertext, buf[:n])
			if _, err := out.Write(ciphertext); err != nil {
				return steelerr.Io("write ciphertext", err)
			}
			mac.Write(ciphertext)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return steelerr.Io("read plaintext", readErr)
		}
	}

	if _, err := out.Write(mac.Sum(nil)); err != nil {
		return steelerr.Io("write tag", err)
	}

	return steelerr.Io("sync temp", out.Sync())
}
