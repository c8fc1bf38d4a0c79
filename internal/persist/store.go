// Package persist owns the persistence boundary: the snapshot JSON
// codec and a file store for the data directory. The store is plain
// JSON by default; a data dir can opt into passphrase encryption, in
// which case the snapshot file is age-sealed and a verification file
// guards against wrong passphrases.
package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"filippo.io/age"

	"github.com/smartcart-dev/smartcart/internal/model"
)

const (
	snapshotFile = "snapshot.json"

	// markerFile indicates the data dir is encrypted.
	markerFile = ".encrypted"
	// verifyFile holds a known plaintext used to validate the passphrase.
	verifyFile = ".encryption-verify"

	verifyMagic = `{"magic":"smartcart-encryption-verify","version":1}`
)

// ErrLocked means the store is encrypted and has not been unlocked.
var ErrLocked = errors.New("store is locked")

// Store reads and writes the snapshot in a data directory.
type Store struct {
	dataDir   string
	encrypted bool
	identity  *age.ScryptIdentity
	recipient *age.ScryptRecipient
}

// Open creates a Store for a data directory, detecting whether it is
// encrypted. The directory is created if missing.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{dataDir: dataDir}
	if _, err := os.Stat(filepath.Join(dataDir, markerFile)); err == nil {
		s.encrypted = true
	}
	return s, nil
}

// DataDir returns the data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// IsEncrypted reports whether the data dir uses encryption.
func (s *Store) IsEncrypted() bool {
	return s.encrypted
}

// Unlock validates the passphrase against the verification file and
// keeps the derived keys for subsequent reads and writes.
func (s *Store) Unlock(passphrase string) error {
	if !s.encrypted {
		return nil
	}

	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("deriving identity: %w", err)
	}

	sealed, err := os.ReadFile(filepath.Join(s.dataDir, verifyFile))
	if err != nil {
		return fmt.Errorf("reading verification file: %w", err)
	}

	plain, err := decrypt(sealed, identity)
	if err != nil || string(plain) != verifyMagic {
		return errors.New("incorrect passphrase")
	}

	s.identity = identity
	s.recipient, err = age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("deriving recipient: %w", err)
	}
	return nil
}

// EnableEncryption turns on encryption for the data dir, re-sealing
// any existing snapshot with the passphrase.
func (s *Store) EnableEncryption(passphrase string) error {
	if s.encrypted {
		return errors.New("encryption already enabled")
	}

	snap, exists, err := s.Load()
	if err != nil {
		return err
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("deriving recipient: %w", err)
	}
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("deriving identity: %w", err)
	}

	sealed, err := encrypt([]byte(verifyMagic), recipient)
	if err != nil {
		return fmt.Errorf("sealing verification file: %w", err)
	}
	if err := writeAtomic(filepath.Join(s.dataDir, verifyFile), sealed, 0o600); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(s.dataDir, markerFile), []byte{}, 0o600); err != nil {
		return err
	}

	s.encrypted = true
	s.identity = identity
	s.recipient = recipient

	if exists {
		return s.Save(snap)
	}
	return nil
}

// Load reads the snapshot. exists is false when no snapshot has been
// saved yet.
func (s *Store) Load() (snap model.Snapshot, exists bool, err error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, snapshotFile))
	if errors.Is(err, fs.ErrNotExist) {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("reading snapshot: %w", err)
	}

	if s.encrypted {
		if s.identity == nil {
			return model.Snapshot{}, false, ErrLocked
		}
		data, err = decrypt(data, s.identity)
		if err != nil {
			return model.Snapshot{}, false, fmt.Errorf("decrypting snapshot: %w", err)
		}
	}

	snap, err = Unmarshal(data)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	return snap, true, nil
}

// Save writes the snapshot atomically (temp file + rename).
func (s *Store) Save(snap model.Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if s.encrypted {
		if s.recipient == nil {
			return ErrLocked
		}
		data, err = encrypt(data, s.recipient)
		if err != nil {
			return fmt.Errorf("encrypting snapshot: %w", err)
		}
		mode = 0o600
	}

	return writeAtomic(filepath.Join(s.dataDir, snapshotFile), data, mode)
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
