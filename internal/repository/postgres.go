package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mwilczek/shortener/internal/errorz"
	"github.com/mwilczek/shortener/internal/models"
)

const uniqueViolation = "23505"

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

func (r *PostgresRepo) FindByCode(ctx context.Context, code string) (models.URLMapping, error) {
	var m models.URLMapping

	err := r.pool.QueryRow(ctx,
		`SELECT id, short_code, long_url, user_id, created_at FROM urls WHERE short_code = $1`,
		code,
	).Scan(&m.ID, &m.ShortCode, &m.LongURL, &m.OwnerID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.URLMapping{}, errorz.ErrNotFound
	} else if err != nil {
		return models.URLMapping{}, err
	}

	return m, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, code, longURL string, ownerID int64) (int64, error) {
	var id int64

	err := r.pool.QueryRow(ctx,
		`INSERT INTO urls (short_code, long_url, user_id) VALUES ($1, $2, $3) RETURNING id`,
		code, longURL, ownerID,
	).Scan(&id)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return 0, errorz.ErrCodeTaken
	} else if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.URLMapping, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, short_code, long_url, user_id, created_at FROM urls
		 WHERE user_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []models.URLMapping
	for rows.Next() {
		var m models.URLMapping
		if err := rows.Scan(&m.ID, &m.ShortCode, &m.LongURL, &m.OwnerID, &m.CreatedAt); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}

	return mappings, rows.Err()
}

func (r *PostgresRepo) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64

	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, passwordHash,
	).Scan(&id)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return 0, errorz.ErrEmailTaken
	} else if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, errorz.ErrNotFound
	} else if err != nil {
		return models.User{}, err
	}

	return u, nil
}

func (r *PostgresRepo) InsertClick(ctx context.Context, click models.ClickRow) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO clicks (url_id, ip_address, user_agent, created_at) VALUES ($1, $2, $3, $4)`,
		click.URLID, click.IPAddress, click.UserAgent, click.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) CountClicks(ctx context.Context, urlID int64) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM clicks WHERE url_id = $1`,
		urlID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// TopClicked returns the most clicked mappings over the trailing window,
// joined back to urls so the warm path carries store-consistent values.
func (r *PostgresRepo) TopClicked(ctx context.Context, amount int, window time.Duration) ([]models.TopClickedEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.short_code, u.long_url
		 FROM clicks c
		 JOIN urls u ON u.id = c.url_id
		 WHERE c.created_at > now() - make_interval(secs => $2)
		 GROUP BY u.short_code, u.long_url
		 ORDER BY count(*) DESC
		 LIMIT $1`,
		amount, window.Seconds(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TopClickedEntry
	for rows.Next() {
		var e models.TopClickedEntry
		if err := rows.Scan(&e.ShortCode, &e.LongURL); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
