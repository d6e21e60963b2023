// 로그인 사용자 목록 (메모리 보관)
//
// 사용자 출처 우선순위:
//  1. KIDDOLAND_AUTH_USERS_FILE: YAML 또는 JSON 파일
//  2. KIDDOLAND_AUTH_USERS: JSON 배열
//  3. 둘 다 없으면 데모 사용자
//
// 프로세스가 살아있는 동안만 유지되며 디스크에 다시 쓰지 않는다.

package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/model"
)

type userEntry struct {
	ID           string   `json:"id" yaml:"id"`
	Email        string   `json:"email" yaml:"email"`
	Password     string   `json:"password" yaml:"password"`
	PasswordHash string   `json:"password_hash" yaml:"password_hash"`
	PasswordSalt string   `json:"password_salt" yaml:"password_salt"`
	Role         string   `json:"role" yaml:"role"`
	Modes        []string `json:"modes" yaml:"modes"`
}

var demoUsers = []userEntry{
	{Email: "parent@kiddoland.local", Password: "Parent123!", Role: model.RoleParent, Modes: []string{model.ModeHome}},
	{Email: "teacher@kiddoland.local", Password: "Teacher123!", Role: model.RoleTeacher, Modes: []string{model.ModeInstitution}},
	{Email: "admin@kiddoland.local", Password: "Admin123!", Role: model.RoleAdmin, Modes: []string{model.ModeInstitution}},
}

type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*model.User
}

func NewUserStore(users []*model.User) *UserStore {
	s := &UserStore{byEmail: make(map[string]*model.User, len(users))}
	for _, u := range users {
		s.byEmail[normalizeEmail(u.Email)] = u
	}
	return s
}

func (s *UserStore) Get(email string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[normalizeEmail(email)]
	return u, ok
}

// Add stores user unless the email is already taken.
func (s *UserStore) Add(user *model.User) error {
	key := normalizeEmail(user.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[key]; exists {
		return ErrConflict
	}
	s.byEmail[key] = user
	return nil
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}

// LoadUsers resolves the configured user list. The second return value names the source.
func LoadUsers(cfg config.AuthConfig) ([]*model.User, string, error) {
	var (
		entries []userEntry
		source  string
	)

	switch {
	case cfg.UsersFile != "":
		raw, err := os.ReadFile(cfg.UsersFile)
		if err != nil {
			return nil, "", fmt.Errorf("%w: failed to read KIDDOLAND_AUTH_USERS_FILE: %v", ErrMisconfigured, err)
		}
		// YAML 파서는 JSON 파일도 그대로 읽는다.
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return nil, "", fmt.Errorf("%w: KIDDOLAND_AUTH_USERS_FILE is not valid YAML: %v", ErrMisconfigured, err)
		}
		source = "file"
	case cfg.UsersJSON != "":
		if err := json.Unmarshal([]byte(cfg.UsersJSON), &entries); err != nil {
			return nil, "", fmt.Errorf("%w: KIDDOLAND_AUTH_USERS is not valid JSON: %v", ErrMisconfigured, err)
		}
		source = "env"
	default:
		entries = demoUsers
		source = "demo"
	}

	users := make([]*model.User, 0, len(entries))
	for i, entry := range entries {
		user, err := entry.toUser()
		if err != nil {
			return nil, "", fmt.Errorf("%w: user entry %d: %v", ErrMisconfigured, i, err)
		}
		users = append(users, user)
	}
	return users, source, nil
}

func (e userEntry) toUser() (*model.User, error) {
	email := normalizeEmail(e.Email)
	role := strings.TrimSpace(e.Role)
	if email == "" || role == "" {
		return nil, fmt.Errorf("email and role are required")
	}
	if !model.IsValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	for _, mode := range e.Modes {
		if !model.IsValidMode(mode) {
			return nil, fmt.Errorf("unknown mode %q", mode)
		}
	}

	user := &model.User{
		ID:    e.ID,
		Email: email,
		Role:  role,
		Modes: e.Modes,
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	switch {
	case e.PasswordHash != "" && e.PasswordSalt != "":
		hash, err := base64.StdEncoding.DecodeString(e.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("password_hash is not base64")
		}
		salt, err := base64.StdEncoding.DecodeString(e.PasswordSalt)
		if err != nil {
			return nil, fmt.Errorf("password_salt is not base64")
		}
		if len(hash) == 0 || len(salt) == 0 {
			return nil, fmt.Errorf("password_hash and password_salt must not be empty")
		}
		user.PBKDF2Hash = hash
		user.PBKDF2Salt = salt
	case e.Password != "":
		hash, err := hashPassword(e.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	default:
		return nil, fmt.Errorf("password or password_hash/password_salt is required")
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
