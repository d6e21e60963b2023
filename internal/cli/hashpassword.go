package cli

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kiddoland/backend/internal/model"
	"github.com/kiddoland/backend/internal/service"
)

type hashedUser struct {
	Email        string   `yaml:"email"`
	PasswordHash string   `yaml:"password_hash"`
	PasswordSalt string   `yaml:"password_salt"`
	Role         string   `yaml:"role"`
	Modes        []string `yaml:"modes,omitempty"`
}

// HashPasswordCmd prints a users file entry with a PBKDF2 password hash.
// The password is read from the first line of stdin.
func HashPasswordCmd() *cobra.Command {
	var (
		email string
		role  string
		modes []string
	)

	cmd := &cobra.Command{
		Use:          "hash-password",
		Short:        "Print a users file entry with a PBKDF2 password hash",
		Example:      `  echo 'S3cret!' | kiddoland hash-password --email teacher@school.example --role Teacher --mode institution`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.IsValidRole(role) {
				return fmt.Errorf("unknown role %q, expected one of %s", role, strings.Join(model.Roles, ", "))
			}
			for _, mode := range modes {
				if !model.IsValidMode(mode) {
					return fmt.Errorf("unknown mode %q, expected one of %s", mode, strings.Join(model.Modes, ", "))
				}
			}

			password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			password = strings.TrimRight(password, "\r\n")
			if password == "" {
				if err != nil {
					return fmt.Errorf("failed to read password from stdin: %w", err)
				}
				return errors.New("password must not be empty")
			}

			hash, salt, err := service.HashPBKDF2(password)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal([]hashedUser{{
				Email:        strings.ToLower(strings.TrimSpace(email)),
				PasswordHash: base64.StdEncoding.EncodeToString(hash),
				PasswordSalt: base64.StdEncoding.EncodeToString(salt),
				Role:         role,
				Modes:        modes,
			}})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&role, "role", model.RoleParent, "user role")
	cmd.Flags().StringSliceVar(&modes, "mode", nil, "allowed modes (repeatable, empty allows all)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
