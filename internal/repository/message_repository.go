package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// MessageRepository encapsulates inbound message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.InboundMessage) error
	GetByID(ctx context.Context, id int64) (*domain.InboundMessage, error)
	// GetByExternalID returns nil when no message carries the id, enabling
	// webhook re-delivery dedup.
	GetByExternalID(ctx context.Context, externalID string) (*domain.InboundMessage, error)
	MarkProcessed(ctx context.Context, id int64, response string) error
	ListUnprocessed(ctx context.Context, limit int) ([]domain.InboundMessage, error)
	ListRecent(ctx context.Context, limit int) ([]domain.InboundMessage, error)
	CountProcessed(ctx context.Context) (int, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

const messageColumns = `id, external_id, phone, body, command, processed, response, received_at`

func (r *messageRepository) Create(ctx context.Context, message *domain.InboundMessage) error {
	const query = `
        INSERT INTO whatsapp_messages (external_id, phone, body)
        VALUES ($1, $2, $3)
        RETURNING id, received_at`

	return r.pool.QueryRow(ctx, query,
		message.ExternalID,
		message.Phone,
		message.Body,
	).Scan(&message.ID, &message.ReceivedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*domain.InboundMessage, error) {
	const query = `SELECT ` + messageColumns + ` FROM whatsapp_messages WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *messageRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.InboundMessage, error) {
	const query = `SELECT ` + messageColumns + ` FROM whatsapp_messages WHERE external_id=$1`
	message, err := r.fetchSingle(ctx, query, externalID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return message, err
}

func (r *messageRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.InboundMessage, error) {
	var message domain.InboundMessage
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&message.ID,
		&message.ExternalID,
		&message.Phone,
		&message.Body,
		&message.Command,
		&message.Processed,
		&message.Response,
		&message.ReceivedAt,
	); err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkProcessed consumes a message without an attendance event, used for the
// locally-recovered outcomes (unknown sender, unrecognized command, invalid
// transition). The processed guard keeps consumption at-most-once.
func (r *messageRepository) MarkProcessed(ctx context.Context, id int64, response string) error {
	const query = `
        UPDATE whatsapp_messages
        SET processed=TRUE, response=$1
        WHERE id=$2 AND processed=FALSE`

	cmd, err := r.pool.Exec(ctx, query, response, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMessageAlreadyProcessed
	}
	return nil
}

func (r *messageRepository) ListUnprocessed(ctx context.Context, limit int) ([]domain.InboundMessage, error) {
	const query = `
        SELECT ` + messageColumns + `
        FROM whatsapp_messages
        WHERE processed=FALSE
        ORDER BY received_at
        LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *messageRepository) ListRecent(ctx context.Context, limit int) ([]domain.InboundMessage, error) {
	const query = `
        SELECT ` + messageColumns + `
        FROM whatsapp_messages
        ORDER BY received_at DESC
        LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *messageRepository) list(ctx context.Context, query string, limit int) ([]domain.InboundMessage, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InboundMessage
	for rows.Next() {
		var message domain.InboundMessage
		if err := rows.Scan(
			&message.ID,
			&message.ExternalID,
			&message.Phone,
			&message.Body,
			&message.Command,
			&message.Processed,
			&message.Response,
			&message.ReceivedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

func (r *messageRepository) CountProcessed(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM whatsapp_messages WHERE processed`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
