package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
)

// TokenKey is the key the auth token is stored under.
const TokenKey = "jwtToken"

// TokenStore persists the single auth token of a session.
type TokenStore interface {
	Get() (token string, found bool, err error)
	Save(token string) error
	Destroy() error
}

type MemoryTokenStore struct {
	data *collectionutils.SafeMap[string, string]
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{data: collectionutils.New[string, string]()}
}

func (s *MemoryTokenStore) Get() (string, bool, error) {
	token, found := s.data.Get(TokenKey)
	return token, found, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.data.Store(TokenKey, token)
	return nil
}

func (s *MemoryTokenStore) Destroy() error {
	s.data.Delete(TokenKey)
	return nil
}

// FileTokenStore keeps the token in a file readable only by its owner.
type FileTokenStore struct {
	Path string
}

// DefaultTokenPath is the token file under the user's config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", xerrors.New(err)
	}
	return filepath.Join(dir, "conduit", TokenKey), nil
}

func (s *FileTokenStore) Get() (string, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, xerrors.New(err)
	}
	token := strings.TrimSpace(string(data))
	return token, token != "", nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return xerrors.New(err)
	}
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (s *FileTokenStore) Destroy() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return xerrors.New(err)
	}
	return nil
}
