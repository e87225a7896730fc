package container

import (
	"encoding/binary"
	"io"
	"os"
)

// IsContainer reports whether the file at path begins with the Steel
// magic marker at its designated offset. A magic mismatch is not an
// error — it is the documented signal that decrypt must refuse to touch
// this file as if it were one of ours.
func IsContainer(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	buf := make([]byte, MagicLen)
	if _, err := f.ReadAt(buf, magicOffset); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, err
	}

	return binary.LittleEndian.Uint32(buf) == Magic, nil
}
