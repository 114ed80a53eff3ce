package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yelpcamp/internal/models"
)

const userColumns = `id, email, username, password_hash, created_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (q *queries) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := q.db.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return translate("postgres.CreateUser", err)
	}
	return nil
}

func (q *queries) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate("postgres.GetUser", err)
	}
	return u, nil
}

func (q *queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, translate("postgres.GetUserByUsername", err)
	}
	return u, nil
}

func (q *queries) GetUsers(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translate("postgres.GetUsers", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate("postgres.GetUsers", err)
		}
		out[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, translate("postgres.GetUsers", err)
	}
	return out, nil
}
