package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/llm"
)

const (
	// ConnectionApology se devuelve si la llamada remota falla. Nunca se propaga el error.
	ConnectionApology = "Estou tendo problemas de conexão no momento. Podemos continuar depois?"
	// EmptyReplyPlaceholder se devuelve si el modelo contesta bien pero sin texto.
	EmptyReplyPlaceholder = "..."

	defaultPersonaTemperature float32 = 0.9
)

// PersonaEngine decide cómo responde la persona: modelo remoto si hay capacidad,
// heurística local si no. Siempre devuelve texto.
type PersonaEngine struct {
	client      llm.ChatClient
	limiter     RemoteCallLimiter
	prompts     PersonaPromptBuilder
	temperature float32
	logger      *zap.Logger
}

// NewPersonaEngine acepta client y limiter nil: sin client la persona es puramente
// heurística; sin limiter no hay tope de llamadas.
func NewPersonaEngine(client llm.ChatClient, limiter RemoteCallLimiter, temperature float32, logger *zap.Logger) *PersonaEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if temperature <= 0 {
		temperature = defaultPersonaTemperature
	}
	return &PersonaEngine{
		client:      client,
		limiter:     limiter,
		temperature: temperature,
		logger:      logger,
	}
}

// RemoteEnabled indica si el motor tiene un modelo remoto inyectado.
func (e *PersonaEngine) RemoteEnabled() bool {
	return e != nil && e.client != nil
}

// GenerateReply devuelve solo el texto de la respuesta.
func (e *PersonaEngine) GenerateReply(ctx context.Context, employee domain.Employee, history []domain.Turn, userMessage string, st domain.SessionType) string {
	return e.Reply(ctx, employee, history, userMessage, st).Text
}

// Reply genera la siguiente intervención de la persona. history no incluye userMessage.
func (e *PersonaEngine) Reply(ctx context.Context, employee domain.Employee, history []domain.Turn, userMessage string, st domain.SessionType) domain.Reply {
	if !e.RemoteEnabled() {
		return e.heuristic(employee, st, userMessage)
	}
	if e.limiter != nil && !e.limiter.Allow(employee.ID) {
		e.logger.Info("remote call limit reached, using heuristic",
			zap.String("employee_id", employee.ID),
		)
		return e.heuristic(employee, st, userMessage)
	}

	req := llm.ChatRequest{
		SystemPrompt: e.prompts.BuildSystemDirective(employee, Frame(st)),
		History:      ToChatHistory(history),
		Message:      userMessage,
		Temperature:  e.temperature,
	}
	text, err := e.client.Chat(ctx, req)
	if err != nil {
		fields := []zap.Field{
			zap.String("employee_id", employee.ID),
			zap.String("session_type", st.String()),
			zap.Error(err),
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			e.logger.Info("remote generation interrupted", fields...)
		} else {
			e.logger.Warn("remote generation failed", fields...)
		}
		return domain.Reply{Text: ConnectionApology, Source: domain.ReplySourceApology}
	}

	text = cleanReplyText(text)
	if strings.TrimSpace(text) == "" {
		return domain.Reply{Text: EmptyReplyPlaceholder, Source: domain.ReplySourcePlaceholder}
	}
	return domain.Reply{Text: text, Source: domain.ReplySourceRemote}
}

func (e *PersonaEngine) heuristic(employee domain.Employee, st domain.SessionType, userMessage string) domain.Reply {
	rule, text := HeuristicDecision(employee.Traits, st, userMessage)
	e.logger.Debug("heuristic reply",
		zap.String("employee_id", employee.ID),
		zap.String("rule", string(rule)),
	)
	return domain.Reply{Text: text, Source: domain.ReplySourceHeuristic}
}
