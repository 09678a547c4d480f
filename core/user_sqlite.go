package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type SQLiteUserStore struct {
	db *sql.DB
}

func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{
		db: db,
	}
}

func (s *SQLiteUserStore) CreateUser(ctx context.Context, username, password string, roles ...string) error {
	existing, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("checking if user exists: %w", err)
	}

	if existing != nil {
		return ErrConflictedUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (@username, @password_hash)",
		sql.Named("username", username), sql.Named("password_hash", string(hashed)))
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	userID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}

	for _, role := range roles {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO user_roles (user_id, role_id) SELECT @user_id, id FROM roles WHERE name = @name",
			sql.Named("user_id", userID), sql.Named("name", role))
		if err != nil {
			return fmt.Errorf("granting role %s: %w", role, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("granting role %s: %w", role, err)
		}
		if n == 0 {
			return ErrUnknownRole
		}
	}

	return tx.Commit()
}

func (s *SQLiteUserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, username FROM users WHERE username = ? LIMIT 1", username)

	user := new(User)

	if err := row.Scan(&user.ID, &user.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT r.name FROM roles r JOIN user_roles ur ON ur.role_id = r.id WHERE ur.user_id = ?", user.ID)
	if err != nil {
		return nil, fmt.Errorf("querying roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		user.Roles = append(user.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}

	return user, nil
}

func (s *SQLiteUserStore) ComparePassword(ctx context.Context, username, password string) (bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT password_hash FROM users WHERE username = ? LIMIT 1", username)

	var storedHash string

	if err := row.Scan(&storedHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("scanning password hash: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return false, nil
	}

	return true, nil
}

func (s *SQLiteUserStore) HasAdmin(ctx context.Context) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_roles ur JOIN roles r ON r.id = ur.role_id WHERE r.name = ?", RoleAdmin)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("scanning count: %w", err)
	}
	return count > 0, nil
}
