package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatherly/notify/pkg/notification"
)

// PostgresStorage is a Storage implementation backed by a pgx connection
// pool. The schema lives in db/migrations.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed notification storage.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const notificationColumns = `id, user_id, source_type, priority, message, link, payload, is_read, read_at, created_at`

func (s *PostgresStorage) Create(ctx context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.TargetUserID == "" {
		return ErrMissingUserID
	}

	payload, err := notification.EncodePayload(n.SourceType, n.Payload)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.TargetUserID, string(n.SourceType), int(n.Priority),
		n.Message, nullString(n.Link), payload, n.IsRead, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, userID, id string) (*notification.Notification, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select notification: %w", err)
	}
	return n, nil
}

func (s *PostgresStorage) List(ctx context.Context, userID string, opts ListOptions) ([]notification.Notification, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`)
	args := []any{userID}

	if len(opts.Types) > 0 {
		types := make([]string, 0, len(opts.Types))
		for _, st := range opts.Types {
			types = append(types, string(st))
		}
		args = append(args, types)
		fmt.Fprintf(&query, ` AND source_type = ANY($%d)`, len(args))
	}
	if opts.OnlyUnread {
		query.WriteString(` AND is_read = FALSE`)
	}

	query.WriteString(` ORDER BY created_at DESC, id ASC`)
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&query, ` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		fmt.Fprintf(&query, ` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (s *PostgresStorage) MarkRead(ctx context.Context, userID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND id = ANY($2) AND is_read = FALSE`,
		userID, ids,
	)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (s *PostgresStorage) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, userID string, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE user_id = $1 AND id = ANY($2)`,
		userID, ids,
	)
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStorage) DeleteAllRead(ctx context.Context, userID string) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE user_id = $1 AND is_read = TRUE`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var (
		n          notification.Notification
		sourceType string
		priority   int
		link       *string
		payload    []byte
		readAt     *time.Time
	)
	if err := row.Scan(
		&n.ID, &n.TargetUserID, &sourceType, &priority,
		&n.Message, &link, &payload, &n.IsRead, &readAt, &n.CreatedAt,
	); err != nil {
		return nil, err
	}

	n.SourceType = notification.SourceType(sourceType)
	n.Priority = notification.Priority(priority)
	if link != nil {
		n.Link = *link
	}
	n.ReadAt = readAt

	p, err := notification.DecodePayload(n.SourceType, payload)
	if err != nil {
		return nil, err
	}
	n.Payload = p
	return &n, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
