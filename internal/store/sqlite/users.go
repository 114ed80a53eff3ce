package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yelpcamp/internal/models"
)

type userRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

func (r userRow) model() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    parseTime(r.CreatedAt),
	}
}

const userColumns = `id, email, username, password_hash, created_at`

func (q *queries) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash, formatTime(u.CreatedAt))
	if err != nil {
		return translate("sqlite.CreateUser", err)
	}
	return nil
}

func (q *queries) GetUser(ctx context.Context, id string) (*models.User, error) {
	var row userRow
	if err := q.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, translate("sqlite.GetUser", err)
	}
	return row.model(), nil
}

func (q *queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	if err := q.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE username = ?`, username); err != nil {
		return nil, translate("sqlite.GetUserByUsername", err)
	}
	return row.model(), nil
}

func (q *queries) GetUsers(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, translate("sqlite.GetUsers", err)
	}
	var rows []userRow
	if err := q.db.SelectContext(ctx, &rows, q.db.Rebind(query), args...); err != nil {
		return nil, translate("sqlite.GetUsers", err)
	}
	for _, r := range rows {
		out[r.ID] = r.model()
	}
	return out, nil
}
