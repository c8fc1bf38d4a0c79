package persist

import (
	"bytes"
	"io"

	"filippo.io/age"
)

// encrypt seals data with an age scrypt recipient.
func encrypt(data []byte, recipient *age.ScryptRecipient) ([]byte, error) {
	var buf bytes.Buffer

	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decrypt opens age-sealed data with a scrypt identity.
func decrypt(data []byte, identity *age.ScryptIdentity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
