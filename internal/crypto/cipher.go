package crypto

import (
	"crypto/cipher"

	"github.com/Picocrypt/serpent"
)

// IVLen is the on-disk width of the container's IV field. Serpent is a
// 128-bit block cipher, so only the first SerpentBlockSize bytes of the
// field are used as the actual CFB feedback register; the remaining bytes
// exist purely to keep the on-disk layout's IV field at its fixed width,
// and are still covered by the MAC like every other header byte.
const IVLen = 32

// SerpentBlockSize is Serpent's block size in bytes.
const SerpentBlockSize = 16

// CipherStream wraps a single-direction Serpent-CFB keystream. Construct
// one with NewEncryptStream or NewDecryptStream depending on direction;
// CFB's keystream generation differs between the two, so a stream built
// for one direction must not be reused for the other.
type CipherStream struct {
	stream cipher.Stream
}

func blockAndIV(key, iv []byte) (cipher.Block, []byte, error) {
	block, err := serpent.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	return block, iv[:SerpentBlockSize], nil
}

// NewEncryptStream builds the keystream used to turn plaintext into
// ciphertext. iv must be at least SerpentBlockSize bytes; only the leading
// SerpentBlockSize bytes are used.
func NewEncryptStream(key, iv []byte) (*CipherStream, error) {
	block, streamIV, err := blockAndIV(key, iv)
	if err != nil {
		return nil, err
	}
	return &CipherStream{stream: cipher.NewCFBEncrypter(block, streamIV)}, nil
}

// NewDecryptStream builds the keystream used to turn ciphertext back into
// plaintext, for the same key and IV an encrypt stream was built with.
func NewDecryptStream(key, iv []byte) (*CipherStream, error) {
	block, streamIV, err := blockAndIV(key, iv)
	if err != nil {
		return nil, err
	}
	return &CipherStream{stream: cipher.NewCFBDecrypter(block, streamIV)}, nil
}

// XORKeyStream advances the stream over src, writing the result to dst.
// dst and src may overlap exactly as crypto/cipher.Stream allows.
func (c *CipherStream) XORKeyStream(dst, src []byte) {
	c.stream.XORKeyStream(dst, src)
}
