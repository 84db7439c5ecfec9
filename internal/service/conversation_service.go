package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/repository"
)

var (
	ErrConversationNotConfigured = errors.New("conversation service not configured")
	ErrConversationInvalidInput  = errors.New("conversation invalid input")
	ErrConversationNotFound      = errors.New("conversation not found")
	ErrConversationEnded         = errors.New("conversation already ended")
	ErrGenerationInFlight        = errors.New("a reply is already being generated for this conversation")
)

// PersonaResponder produce la siguiente intervención de la persona.
type PersonaResponder interface {
	Reply(ctx context.Context, employee domain.Employee, history []domain.Turn, userMessage string, st domain.SessionType) domain.Reply
}

// employeeDirectory es lo que la conversación necesita de las personas.
type employeeDirectory interface {
	Get(ctx context.Context, id string) (domain.Employee, error)
	AppendHistory(ctx context.Context, id string, entry domain.SessionSummary) (domain.Employee, error)
}

// SendResult es el par de turnos agregado por un envío.
type SendResult struct {
	ManagerTurn domain.Turn        `json:"manager_turn"`
	PersonaTurn domain.Turn        `json:"persona_turn"`
	Source      domain.ReplySource `json:"source"`
}

// ConversationService conduce una práctica: abre con la línea de la persona, alterna
// turnos y al cerrar deja un resumen en el historial del empleado.
type ConversationService struct {
	repo      repository.ConversationRepository
	employees employeeDirectory
	responder PersonaResponder
	guard     GenerationGuard
	logger    *zap.Logger
}

func NewConversationService(
	repo repository.ConversationRepository,
	employees employeeDirectory,
	responder PersonaResponder,
	guard GenerationGuard,
	logger *zap.Logger,
) *ConversationService {
	if guard == nil {
		guard = NewLocalGenerationGuard(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationService{
		repo:      repo,
		employees: employees,
		responder: responder,
		guard:     guard,
		logger:    logger,
	}
}

func (s *ConversationService) configured() bool {
	return s != nil && s.repo != nil && s.employees != nil && s.responder != nil
}

// Start abre una conversación con una foto del empleado tal como está ahora.
func (s *ConversationService) Start(ctx context.Context, employeeID string, st domain.SessionType) (domain.Conversation, error) {
	if !s.configured() {
		return domain.Conversation{}, ErrConversationNotConfigured
	}
	if !st.Valid() {
		return domain.Conversation{}, fmt.Errorf("%w: unknown session type", ErrConversationInvalidInput)
	}
	employee, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return domain.Conversation{}, err
	}

	now := time.Now().UTC()
	conv := domain.Conversation{
		ID:          uuid.NewString(),
		Employee:    employee,
		SessionType: st,
		Turns: []domain.Turn{{
			ID:        uuid.NewString(),
			Speaker:   domain.SpeakerPersona,
			Text:      Frame(st).OpeningLine,
			CreatedAt: now,
		}},
		StartedAt: now,
	}
	if err := s.repo.Create(ctx, conv); err != nil {
		return domain.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	s.logger.Info("conversation started",
		zap.String("conversation_id", conv.ID),
		zap.String("employee_id", employee.ID),
		zap.String("session_type", st.String()),
	)
	return conv.Clone(), nil
}

func (s *ConversationService) Get(ctx context.Context, id string) (domain.Conversation, error) {
	if !s.configured() {
		return domain.Conversation{}, ErrConversationNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Conversation{}, ErrConversationInvalidInput
	}
	conv, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Conversation{}, ErrConversationNotFound
	}
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

// Send agrega el turno del gestor y la respuesta de la persona. Hay a lo sumo una
// generación en vuelo por conversación; la segunda recibe ErrGenerationInFlight.
func (s *ConversationService) Send(ctx context.Context, conversationID, text string) (SendResult, error) {
	if !s.configured() {
		return SendResult{}, ErrConversationNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return SendResult{}, fmt.Errorf("%w: empty message", ErrConversationInvalidInput)
	}
	if _, err := s.Get(ctx, conversationID); err != nil {
		return SendResult{}, err
	}

	release, err := s.acquire(ctx, conversationID)
	if err != nil {
		return SendResult{}, err
	}
	defer release()

	// releer con el lock tomado
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return SendResult{}, err
	}
	if conv.Ended() {
		return SendResult{}, ErrConversationEnded
	}

	managerTurn := domain.Turn{
		ID:        uuid.NewString(),
		Speaker:   domain.SpeakerManager,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	reply := s.responder.Reply(ctx, conv.Employee, conv.Turns, text, conv.SessionType)
	personaTurn := domain.Turn{
		ID:        uuid.NewString(),
		Speaker:   domain.SpeakerPersona,
		Text:      reply.Text,
		CreatedAt: time.Now().UTC(),
	}

	conv.Turns = append(conv.Turns, managerTurn, personaTurn)
	if err := s.repo.Update(ctx, conv); err != nil {
		return SendResult{}, fmt.Errorf("append turns: %w", err)
	}
	s.logger.Debug("turn appended",
		zap.String("conversation_id", conv.ID),
		zap.String("source", string(reply.Source)),
		zap.Int("turns", len(conv.Turns)),
	)
	return SendResult{ManagerTurn: managerTurn, PersonaTurn: personaTurn, Source: reply.Source}, nil
}

// End cierra la conversación y registra score y resumen en el historial del empleado.
func (s *ConversationService) End(ctx context.Context, conversationID string, score int, summary string) (domain.Conversation, error) {
	if !s.configured() {
		return domain.Conversation{}, ErrConversationNotConfigured
	}
	if _, err := s.Get(ctx, conversationID); err != nil {
		return domain.Conversation{}, err
	}
	release, err := s.acquire(ctx, conversationID)
	if err != nil {
		return domain.Conversation{}, err
	}
	defer release()

	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return domain.Conversation{}, err
	}
	if conv.Ended() {
		return domain.Conversation{}, ErrConversationEnded
	}

	// El resumen se registra antes de cerrar: si falla, la conversación sigue abierta
	// y End se puede reintentar. La entrada usa el ID de la conversación, así un
	// reintento la reemplaza en vez de duplicarla.
	now := time.Now().UTC()
	entry := domain.SessionSummary{
		ID:      conv.ID,
		Date:    now,
		Type:    conv.SessionType,
		Score:   score,
		Summary: summary,
	}
	if _, err := s.employees.AppendHistory(ctx, conv.Employee.ID, entry); err != nil {
		return domain.Conversation{}, fmt.Errorf("record session summary: %w", err)
	}
	conv.EndedAt = &now
	if err := s.repo.Update(ctx, conv); err != nil {
		return domain.Conversation{}, fmt.Errorf("end conversation: %w", err)
	}
	s.logger.Info("conversation ended",
		zap.String("conversation_id", conv.ID),
		zap.Int("score", domain.ClampTrait(score)),
		zap.Int("turns", len(conv.Turns)),
	)
	return conv, nil
}

func (s *ConversationService) acquire(ctx context.Context, conversationID string) (func(), error) {
	conversationID = strings.TrimSpace(conversationID)
	token, ok, err := s.guard.Acquire(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("acquire generation guard: %w", err)
	}
	if !ok {
		return nil, ErrGenerationInFlight
	}
	return func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), conversationID, token); err != nil {
			s.logger.Warn("release generation guard failed",
				zap.String("conversation_id", conversationID),
				zap.Error(err),
			)
		}
	}, nil
}
