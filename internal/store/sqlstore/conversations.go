package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loreweaver/internal/store"
)

const (
	conversationColumns = `id, campaign_id, context_type, total_input_tokens, total_output_tokens,
	total_cache_read_tokens, total_cache_creation_tokens, created_at, updated_at`
	messageColumns = `id, conversation_id, role, content, tool_name, tool_input_json, tool_data_json,
	proposal_json, message_order, created_at`

	conversationLabel = "AiConversation"

	// maxOrderAttempts bounds retries when two writers race for the same
	// message_order.
	maxOrderAttempts = 5
)

func scanConversation(row rowScanner) (*store.AiConversation, error) {
	var c store.AiConversation
	err := row.Scan(&c.ID, &c.CampaignID, &c.ContextType, &c.TotalInputTokens, &c.TotalOutputTokens,
		&c.TotalCacheReadTokens, &c.TotalCacheCreationTokens, scanTime(&c.CreatedAt), scanTime(&c.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanMessage(row rowScanner) (*store.AiMessage, error) {
	var m store.AiMessage
	err := row.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.ToolName, &m.ToolInputJSON,
		&m.ToolDataJSON, &m.ProposalJSON, &m.MessageOrder, scanTime(&m.CreatedAt))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *DB) getConversation(ctx context.Context, q querier, id string) (*store.AiConversation, error) {
	return selectOne(ctx, s, q, scanConversation, conversationLabel, id,
		`SELECT `+conversationColumns+` FROM ai_conversations WHERE id = ?`, id)
}

// GetOrCreateConversation returns the campaign's conversation for
// contextType, creating an empty one on first use.
func (s *DB) GetOrCreateConversation(ctx context.Context, campaignID, contextType string) (*store.AiConversation, error) {
	if err := store.ValidateContextType(contextType); err != nil {
		return nil, err
	}
	now := formatTime(s.timestamp())
	_, err := s.exec(ctx, s.db, `INSERT INTO ai_conversations (`+conversationColumns+`)
		VALUES (?, ?, ?, 0, 0, 0, 0, ?, ?)
		ON CONFLICT (campaign_id, context_type) DO NOTHING`,
		s.newID(), campaignID, contextType, now, now)
	if err != nil {
		return nil, store.Database(fmt.Errorf("creating conversation: %w", err))
	}
	return selectOne(ctx, s, s.db, scanConversation, conversationLabel, campaignID+"/"+contextType,
		`SELECT `+conversationColumns+` FROM ai_conversations WHERE campaign_id = ? AND context_type = ?`,
		campaignID, contextType)
}

// LoadConversation returns nil without error when no conversation exists.
func (s *DB) LoadConversation(ctx context.Context, campaignID, contextType string) (*store.ConversationWithMessages, error) {
	c, err := selectOne(ctx, s, s.db, scanConversation, conversationLabel, campaignID+"/"+contextType,
		`SELECT `+conversationColumns+` FROM ai_conversations WHERE campaign_id = ? AND context_type = ?`,
		campaignID, contextType)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	messages, err := s.ListMessages(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &store.ConversationWithMessages{Conversation: *c, Messages: messages}, nil
}

func (s *DB) ListConversations(ctx context.Context) ([]store.AiConversation, error) {
	return selectAll(ctx, s, s.db, scanConversation, "conversations",
		`SELECT `+conversationColumns+` FROM ai_conversations ORDER BY updated_at DESC, id`)
}

func (s *DB) ListMessages(ctx context.Context, conversationID string) ([]store.AiMessage, error) {
	return selectAll(ctx, s, s.db, scanMessage, "messages",
		`SELECT `+messageColumns+` FROM ai_messages WHERE conversation_id = ? ORDER BY message_order`, conversationID)
}

// AddMessage appends a message with the next message_order. The unique
// (conversation_id, message_order) constraint catches concurrent writers;
// the loser retries with a fresh order.
func (s *DB) AddMessage(ctx context.Context, in store.AddMessageInput) (*store.AiMessage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var lastErr error
	for attempt := 1; attempt <= maxOrderAttempts; attempt++ {
		m, err := s.insertMessage(ctx, in)
		if err == nil {
			return m, nil
		}
		if !s.dialect.IsUniqueViolation(err) {
			return nil, store.Database(err)
		}
		lastErr = err
		s.logger.Debug().
			Str("conversation_id", in.ConversationID).
			Int("attempt", attempt).
			Msg("message order taken, retrying")
	}
	return nil, store.Database(fmt.Errorf("assigning message order after %d attempts: %w", maxOrderAttempts, lastErr))
}

func (s *DB) insertMessage(ctx context.Context, in store.AddMessageInput) (*store.AiMessage, error) {
	now := s.timestamp()
	m := &store.AiMessage{
		ID:             s.newID(),
		ConversationID: in.ConversationID,
		Role:           in.Role,
		Content:        in.Content,
		ToolName:       in.ToolName,
		ToolInputJSON:  in.ToolInputJSON,
		ToolDataJSON:   in.ToolDataJSON,
		ProposalJSON:   in.ProposalJSON,
		CreatedAt:      now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.getConversation(ctx, tx, in.ConversationID); err != nil {
		return nil, err
	}
	if err := s.queryRow(ctx, tx,
		`SELECT COALESCE(MAX(message_order), 0) + 1 FROM ai_messages WHERE conversation_id = ?`,
		in.ConversationID).Scan(&m.MessageOrder); err != nil {
		return nil, fmt.Errorf("reading message order: %w", err)
	}
	if _, err := s.exec(ctx, tx, `INSERT INTO ai_messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ConversationID, m.Role, m.Content, nullable(m.ToolName), nullable(m.ToolInputJSON),
		nullable(m.ToolDataJSON), nullable(m.ProposalJSON), m.MessageOrder, formatTime(now)); err != nil {
		return nil, fmt.Errorf("adding message: %w", err)
	}
	if _, err := s.exec(ctx, tx, `UPDATE ai_conversations SET updated_at = ? WHERE id = ?`,
		formatTime(now), in.ConversationID); err != nil {
		return nil, fmt.Errorf("touching conversation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing message: %w", err)
	}
	return m, nil
}

// UpdateTokenCounts adds usage onto the stored totals.
func (s *DB) UpdateTokenCounts(ctx context.Context, conversationID string, usage store.TokenUsage) (*store.AiConversation, error) {
	var out *store.AiConversation
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `UPDATE ai_conversations
			SET total_input_tokens = total_input_tokens + ?,
				total_output_tokens = total_output_tokens + ?,
				total_cache_read_tokens = total_cache_read_tokens + ?,
				total_cache_creation_tokens = total_cache_creation_tokens + ?,
				updated_at = ?
			WHERE id = ?`,
			usage.InputTokens, usage.OutputTokens, usage.CacheReadTokens, usage.CacheCreationTokens,
			formatTime(s.timestamp()), conversationID)
		if err != nil {
			return fmt.Errorf("updating token counts: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating token counts: %w", err)
		}
		if n == 0 {
			return store.NotFound(conversationLabel, conversationID)
		}
		out, err = s.getConversation(ctx, tx, conversationID)
		return err
	})
	return out, err
}

// ClearConversation deletes every message and zeroes the counters. It
// reports whether any message was removed.
func (s *DB) ClearConversation(ctx context.Context, conversationID string) (bool, error) {
	var cleared bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `DELETE FROM ai_messages WHERE conversation_id = ?`, conversationID)
		if err != nil {
			return fmt.Errorf("clearing messages: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("clearing messages: %w", err)
		}
		cleared = n > 0
		_, err = s.exec(ctx, tx, `UPDATE ai_conversations
			SET total_input_tokens = 0, total_output_tokens = 0, total_cache_read_tokens = 0,
				total_cache_creation_tokens = 0, updated_at = ?
			WHERE id = ?`, formatTime(s.timestamp()), conversationID)
		if err != nil {
			return fmt.Errorf("resetting token counts: %w", err)
		}
		return nil
	})
	return cleared, err
}
