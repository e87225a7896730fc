// Package container implements Steel's on-disk encrypted format: a
// password verifier, a magic marker, an IV, a redundant salt copy,
// ciphertext, and a trailing authentication tag. Encrypt and Decrypt are
// the only two entry points; everything else in this package exists to
// support those two operations and their failure paths.
package container

import (
	"encoding/binary"

	"github.com/byteptr/steel/internal/crypto"
)

// Magic identifies a Steel container. Stored and compared in little-endian
// form; this is a documented, versioned choice (see DESIGN.md) rather than
// "native" byte order, since a container format has to pick one to remain
// portable.
const Magic uint32 = 0x33497545

// MagicLen is the width in bytes of the magic field.
const MagicLen = 4

// VerifierLen is the width of the password verifier field and, per the
// format's redundant layout, of the salt copy stored later in the header.
const VerifierLen = crypto.VerifierLen

// IVLen is the width of the IV field.
const IVLen = crypto.IVLen

// MACLen is the width of the trailing authentication tag.
const MACLen = crypto.MACSize

// Layout offsets, derived from the field widths above. The order is fixed
// by the format and must never change without a version bump:
// verifier, magic, iv, salt copy, ciphertext, tag.
const (
	verifierOffset = 0
	magicOffset    = verifierOffset + VerifierLen
	ivOffset       = magicOffset + MagicLen
	saltOffset     = ivOffset + IVLen
	headerLen      = saltOffset + VerifierLen
)

// minFileSize is the smallest a container can legally be: a full header
// plus a tag and zero bytes of ciphertext (an empty plaintext payload).
const minFileSize = headerLen + MACLen

// magicBytes returns Magic encoded the way it is written to and read from
// the container's header.
func magicBytes() []byte {
	b := make([]byte, MagicLen)
	binary.LittleEndian.PutUint32(b, Magic)
	return b
}
