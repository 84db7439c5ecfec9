package repository

import (
	"context"
	"errors"
	"sync"

	"twin-dojo/internal/domain"
)

// ConversationRepository guarda conversaciones completas (encabezado + turnos).
type ConversationRepository interface {
	Create(ctx context.Context, conversation domain.Conversation) error
	GetByID(ctx context.Context, id string) (domain.Conversation, error)
	Update(ctx context.Context, conversation domain.Conversation) error
}

var ErrConversationExists = errors.New("conversation already exists")

type MemoryConversationRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Conversation
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{items: make(map[string]domain.Conversation)}
}

func (r *MemoryConversationRepository) Create(_ context.Context, conversation domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[conversation.ID]; ok {
		return ErrConversationExists
	}
	r.items[conversation.ID] = conversation.Clone()
	return nil
}

func (r *MemoryConversationRepository) GetByID(_ context.Context, id string) (domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return domain.Conversation{}, ErrNotFound
	}
	return c.Clone(), nil
}

func (r *MemoryConversationRepository) Update(_ context.Context, conversation domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[conversation.ID]; !ok {
		return ErrNotFound
	}
	r.items[conversation.ID] = conversation.Clone()
	return nil
}
