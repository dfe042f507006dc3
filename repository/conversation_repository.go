package repository

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vuhuydiet/smartrent-ai/apperrors"
	"github.com/Vuhuydiet/smartrent-ai/models"
)

// ConversationRepository is the in-memory store of conversation
// histories. Histories do not survive a restart.
type ConversationRepository interface {
	// GetOrCreate returns the history for id, creating an empty one if it
	// is unknown. An empty id mints a fresh random id. Never fails.
	GetOrCreate(id string) *models.ConversationHistory

	// Append adds a message to an existing history and bumps UpdatedAt,
	// returning the updated history. Unknown ids fail with ErrNotFound;
	// callers must GetOrCreate first.
	Append(id string, message models.Message) (*models.ConversationHistory, error)

	// Get returns the history for id, or false if it is unknown.
	Get(id string) (*models.ConversationHistory, bool)

	// Delete removes the history for id, reporting whether it existed.
	Delete(id string) bool

	// ListIDs returns all known conversation ids in insertion order.
	ListIDs() []string
}

// conversationRepository guards a map of histories with a RWMutex. An
// optional cap evicts the oldest conversation when exceeded; with a cap
// of 0 the map grows for the lifetime of the process, which is a known
// and accepted limitation.
type conversationRepository struct {
	conversations map[string]*models.ConversationHistory
	order         []string // insertion order, drives ListIDs and eviction
	maxSize       int
	mu            sync.RWMutex
}

// NewConversationRepository creates an in-memory conversation store.
// maxSize of 0 means unbounded.
func NewConversationRepository(maxSize int) ConversationRepository {
	return &conversationRepository{
		conversations: make(map[string]*models.ConversationHistory),
		maxSize:       maxSize,
	}
}

func (r *conversationRepository) GetOrCreate(id string) *models.ConversationHistory {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	} else if conv, exists := r.conversations[id]; exists {
		return copyConversation(conv)
	}

	now := time.Now()
	conv := &models.ConversationHistory{
		ConversationID: id,
		Messages:       []models.Message{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.conversations[id] = conv
	r.order = append(r.order, id)
	r.evictLocked()

	log.Printf("INFO: [ConversationRepo] Created conversation '%s'.", id)
	return copyConversation(conv)
}

func (r *conversationRepository) Append(id string, message models.Message) (*models.ConversationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, exists := r.conversations[id]
	if !exists {
		return nil, fmt.Errorf("%w: conversation '%s' does not exist", apperrors.ErrNotFound, id)
	}

	conv.Messages = append(conv.Messages, message)
	conv.UpdatedAt = time.Now()
	return copyConversation(conv), nil
}

func (r *conversationRepository) Get(id string) (*models.ConversationHistory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, exists := r.conversations[id]
	if !exists {
		return nil, false
	}
	return copyConversation(conv), true
}

func (r *conversationRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conversations[id]; !exists {
		return false
	}
	delete(r.conversations, id)
	r.removeFromOrderLocked(id)
	log.Printf("INFO: [ConversationRepo] Deleted conversation '%s'.", id)
	return true
}

func (r *conversationRepository) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// evictLocked drops the oldest conversations while over the cap. Caller
// must hold the write lock.
func (r *conversationRepository) evictLocked() {
	if r.maxSize <= 0 {
		return
	}
	for len(r.order) > r.maxSize {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.conversations, oldest)
		log.Printf("WARN: [ConversationRepo] Evicted oldest conversation '%s' (cap %d reached).", oldest, r.maxSize)
	}
}

func (r *conversationRepository) removeFromOrderLocked(id string) {
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// copyConversation returns a snapshot so callers cannot mutate the stored
// history behind the lock.
func copyConversation(conv *models.ConversationHistory) *models.ConversationHistory {
	messages := make([]models.Message, len(conv.Messages))
	copy(messages, conv.Messages)
	snapshot := *conv
	snapshot.Messages = messages
	return &snapshot
}
