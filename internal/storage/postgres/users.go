package postgres

import (
	"context"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types/users"
)

func (p *Postgres) CreateUser(ctx context.Context, email, passwordHash string) (string, error) {
	var id string
	err := p.q.QueryRowContext(ctx,
		`INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id`,
		email, passwordHash,
	).Scan(&id)
	if err != nil {
		return "", mapError("create user", err)
	}

	return id, nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	var (
		user      users.User
		createdAt time.Time
	)

	err := p.q.QueryRowContext(ctx,
		`SELECT id, email, password, created_at FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email, &user.Password, &createdAt)
	if err != nil {
		return users.User{}, mapError("get user", err)
	}

	user.CreatedAt = createdAt.Format(time.RFC3339)

	return user, nil
}
