package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// FingerprintFile computes the content fingerprint of the file at path:
// the hex-encoded SHA-256 of its bytes. Read failures come back as
// TransientIOError so callers can apply their retry policy; the file may
// still be mid-write by whatever dropped it into the watched directory.
func FingerprintFile(path string) (*SourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TransientIOError{Path: path, Cause: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &TransientIOError{Path: path, Cause: err}
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, &TransientIOError{Path: path, Cause: err}
	}

	return &SourceFile{
		Path:        path,
		Fingerprint: hex.EncodeToString(h.Sum(nil)),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}
