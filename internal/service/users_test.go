package service

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/model"
)

func TestLoadUsersDemo(t *testing.T) {
	users, source, err := LoadUsers(config.AuthConfig{})
	require.NoError(t, err)
	assert.Equal(t, "demo", source)
	require.Len(t, users, 3)

	store := NewUserStore(users)
	admin, ok := store.Get("ADMIN@kiddoland.local")
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, verifyPassword(admin, "Admin123!"))
	assert.False(t, verifyPassword(admin, "admin123!"))
}

func TestLoadUsersFromEnvJSON(t *testing.T) {
	cfg := config.AuthConfig{UsersJSON: `[{"email":"Lib@Example.com","password":"Books123!","role":"Librarian"}]`}

	users, source, err := LoadUsers(cfg)
	require.NoError(t, err)
	assert.Equal(t, "env", source)
	require.Len(t, users, 1)
	assert.Equal(t, "lib@example.com", users[0].Email)
	assert.NotEmpty(t, users[0].ID)
	assert.True(t, users[0].AllowsMode(model.ModeHome))
	assert.True(t, users[0].AllowsMode(model.ModeInstitution))
}

func TestLoadUsersFromYAMLFileWithPBKDF2(t *testing.T) {
	hash, salt, err := HashPBKDF2("Teacher456!")
	require.NoError(t, err)

	content := "- id: t-1\n" +
		"  email: teacher@school.example\n" +
		"  password_hash: " + base64.StdEncoding.EncodeToString(hash) + "\n" +
		"  password_salt: " + base64.StdEncoding.EncodeToString(salt) + "\n" +
		"  role: Teacher\n" +
		"  modes: [institution]\n"
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// 파일이 env JSON보다 우선
	users, source, err := LoadUsers(config.AuthConfig{UsersFile: path, UsersJSON: "not json"})
	require.NoError(t, err)
	assert.Equal(t, "file", source)
	require.Len(t, users, 1)

	user := users[0]
	assert.Equal(t, "t-1", user.ID)
	assert.True(t, verifyPassword(user, "Teacher456!"))
	assert.False(t, verifyPassword(user, "Teacher457!"))
	assert.False(t, user.AllowsMode(model.ModeHome))
}

func TestLoadUsersInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{"malformed json", config.AuthConfig{UsersJSON: "{"}},
		{"missing role", config.AuthConfig{UsersJSON: `[{"email":"a@b.c","password":"secret1"}]`}},
		{"unknown role", config.AuthConfig{UsersJSON: `[{"email":"a@b.c","password":"secret1","role":"Pirate"}]`}},
		{"unknown mode", config.AuthConfig{UsersJSON: `[{"email":"a@b.c","password":"secret1","role":"Parent","modes":["moon"]}]`}},
		{"no password", config.AuthConfig{UsersJSON: `[{"email":"a@b.c","role":"Parent"}]`}},
		{"bad hash", config.AuthConfig{UsersJSON: `[{"email":"a@b.c","password_hash":"%%%","password_salt":"c2FsdA==","role":"Parent"}]`}},
		{"missing file", config.AuthConfig{UsersFile: filepath.Join(os.TempDir(), "kiddoland-does-not-exist.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadUsers(tt.cfg)
			require.ErrorIs(t, err, ErrMisconfigured)
		})
	}
}

func TestUserStoreAddConflict(t *testing.T) {
	store := NewUserStore(nil)
	require.NoError(t, store.Add(&model.User{ID: "1", Email: "a@b.c", Role: model.RoleParent}))
	require.ErrorIs(t, store.Add(&model.User{ID: "2", Email: " A@B.C", Role: model.RoleParent}), ErrConflict)
	assert.Equal(t, 1, store.Len())
}
