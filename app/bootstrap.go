package bookstore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/kmarval/bookstore-inventory/core"
)

// BootstrapAdmin creates an initial admin user when none exists.
// It is idempotent: if an admin already exists, it does nothing.
func BootstrapAdmin(ctx context.Context, users core.UserStore, config *Config, logger *slog.Logger) error {
	if config.Admin.Username == "" {
		return nil
	}

	has, err := users.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("checking for admin: %w", err)
	}
	if has {
		return nil
	}

	password := config.Admin.Password
	generated := false
	if password == "" {
		password, err = generatePassword(32)
		if err != nil {
			return fmt.Errorf("generating admin password: %w", err)
		}
		generated = true
	}

	if err := users.CreateUser(ctx, config.Admin.Username, password, core.RoleAdmin, core.RoleUser); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	if generated {
		logger.Info("initial admin created",
			slog.String("username", config.Admin.Username),
			slog.String("password", password))
	} else {
		logger.Info("initial admin created", slog.String("username", config.Admin.Username))
	}
	return nil
}

func generatePassword(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
