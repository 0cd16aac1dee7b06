package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// timeLayout keeps stored timestamps sortable as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Message is one board entry.
type Message struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Content   string    `json:"content"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrEmptyContent is returned when a message has no visible content.
var ErrEmptyContent = errors.New("message content is empty")

// WriteMessage stores m and returns it with ID, Seq and Timestamp filled in.
// Any ID, Seq or Timestamp already set on m is ignored.
func (s *Store) WriteMessage(ctx context.Context, m Message) (Message, error) {
	m.Content = norm.NFC.String(m.Content)
	m.UserName = norm.NFC.String(m.UserName)
	if strings.TrimSpace(m.Content) == "" {
		return Message{}, ErrEmptyContent
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Message{}, errors.Wrap(err, "write message: generate id")
	}
	m.ID = id.String()
	m.Timestamp = s.clock.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, content, user_name, created_at)
		VALUES (?, ?, ?, ?)
	`,
		m.ID,
		m.Content,
		m.UserName,
		m.Timestamp.Format(timeLayout),
	)
	if err != nil {
		return Message{}, errors.Wrap(err, "write message")
	}

	m.Seq, err = res.LastInsertId()
	if err != nil {
		return Message{}, errors.Wrap(err, "write message: read seq")
	}
	return m, nil
}

// ListMessages returns every message ordered by seq ascending.
//
// Returns an empty slice (not nil) when the board is empty.
func (s *Store) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, content, user_name, created_at
		FROM messages
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query messages")
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var (
			m       Message
			created string
		)
		if err := rows.Scan(&m.Seq, &m.ID, &m.Content, &m.UserName, &created); err != nil {
			return nil, errors.Wrap(err, "scan message")
		}
		m.Timestamp, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, errors.Wrapf(err, "parse timestamp of message %s", m.ID)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate messages")
	}
	return messages, nil
}

// CountMessages returns the number of stored messages.
func (s *Store) CountMessages(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count messages")
	}
	return n, nil
}
