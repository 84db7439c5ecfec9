package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role etiqueta cada mensaje del historial enviado al proveedor.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage es un turno previo ya reetiquetado para el proveedor.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest es la única forma de pedido que el motor manda al modelo remoto:
// directiva de sistema, historial ordenado y el nuevo mensaje del usuario.
type ChatRequest struct {
	SystemPrompt string
	History      []ChatMessage
	Message      string
	Temperature  float32
	MaxTokens    int
}

// ChatClient define la interfaz para generar una respuesta conversacional con un LLM.
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

var (
	// ErrEmptyCompletion se devuelve cuando el proveedor responde sin candidatos.
	ErrEmptyCompletion = errors.New("llm empty completion")
	ErrUnknownProvider = errors.New("llm unknown provider")
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewChatClient construye el cliente del proveedor indicado.
func NewChatClient(provider, apiKey, baseURL, model string, timeout time.Duration) (ChatClient, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderGemini, "":
		return NewGeminiClient(baseURL, apiKey, model, timeout), nil
	case ProviderOpenAI:
		return NewOpenAIClient(baseURL, apiKey, model, timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
