package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/fileengine/internal/shared/types"
	"github.com/GriffinCanCode/fileengine/internal/shared/utils"
	"github.com/goccy/go-yaml"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserExists is returned when adding a username that is already taken.
	ErrUserExists = errors.New("user already exists")
)

// User is one account as stored on disk.
type User struct {
	Username     string     `yaml:"username"`
	PasswordHash string     `yaml:"password_hash"`
	Role         types.Role `yaml:"role"`
	CreatedAt    time.Time  `yaml:"created_at,omitempty"`
}

type userFile struct {
	Users []User `yaml:"users"`
}

// Store is a YAML-backed user table.
type Store struct {
	mu    sync.RWMutex
	path  string
	users map[string]User
	cost  int
}

// Open loads the user table at path. A missing file yields an empty store
// that is created on the first Add.
func Open(path string) (*Store, error) {
	s := &Store{path: path, users: make(map[string]User), cost: bcrypt.DefaultCost}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	var file userFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for _, u := range file.Users {
		if !u.Role.Valid() {
			return nil, fmt.Errorf("user %q: unknown role %q", u.Username, u.Role)
		}
		s.users[u.Username] = u
	}
	return s, nil
}

// Len reports the number of accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Users returns account names in sorted order.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Authenticate checks a password and returns a fresh session.
func (s *Store) Authenticate(username, password string) (types.Session, error) {
	s.mu.RLock()
	user, ok := s.users[username]
	s.mu.RUnlock()

	if !ok {
		return types.Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.Session{}, ErrInvalidCredentials
	}
	return types.NewSession(user.Username, user.Role), nil
}

// Add creates an account and persists the table.
func (s *Store) Add(username, password string, role types.Role) error {
	if err := utils.ValidateUsername(username); err != nil {
		return err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return fmt.Errorf("%w: %s", ErrUserExists, username)
	}
	s.users[username] = User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.save(); err != nil {
		delete(s.users, username)
		return err
	}
	return nil
}

// SeedAdmin creates an "admin" account with password when the store is
// empty. It reports whether an account was created.
func (s *Store) SeedAdmin(password string) (bool, error) {
	if password == "" || s.Len() > 0 {
		return false, nil
	}
	if err := s.Add("admin", password, types.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

// save writes the table atomically. Callers hold s.mu.
func (s *Store) save() error {
	file := userFile{Users: make([]User, 0, len(s.users))}
	for _, u := range s.users {
		file.Users = append(file.Users, u)
	}
	sort.Slice(file.Users, func(i, j int) bool { return file.Users[i].Username < file.Users[j].Username })

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create users dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}
