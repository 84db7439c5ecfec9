package service

import (
	"fmt"
	"strings"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/llm"
)

// PersonaPromptBuilder construye la directiva de sistema que se envía al modelo remoto.
type PersonaPromptBuilder struct{}

// BuildSystemDirective arma identidad, contexto de la reunión, perfil OCEAN y las
// instrucciones de actuación.
func (PersonaPromptBuilder) BuildSystemDirective(employee domain.Employee, framing Framing) string {
	t := employee.Traits
	var sb strings.Builder

	// 1. Identidad
	sb.WriteString(fmt.Sprintf("Você está interpretando um funcionário chamado %s, cargo: %s.\n", employee.Name, employee.Role))
	sb.WriteString("Idioma: PORTUGUÊS (Brasil).\n\n")

	// 2. Encuadre de la sesión
	sb.WriteString(fmt.Sprintf("CONTEXTO DA REUNIÃO: %s\n\n", framing.BehavioralBrief))

	// 3. Rasgos, textuales
	sb.WriteString("SEU PERFIL DE PERSONALIDADE (Escala 0-100):\n")
	sb.WriteString(fmt.Sprintf("- Abertura: %d (Alto = criativo/curioso, Baixo = conservador/resistente a mudanças)\n", t.Openness))
	sb.WriteString(fmt.Sprintf("- Conscienciosidade: %d (Alto = organizado/eficiente, Baixo = desleixado/improvisador)\n", t.Conscientiousness))
	sb.WriteString(fmt.Sprintf("- Extroversão: %d (Alto = falante/energético, Baixo = reservado/tímido)\n", t.Extraversion))
	sb.WriteString(fmt.Sprintf("- Amabilidade: %d (Alto = compassivo/dócil, Baixo = crítico/desafiador)\n", t.Agreeableness))
	sb.WriteString(fmt.Sprintf("- Neuroticismo: %d (Alto = ansioso/defensivo/instável, Baixo = calmo/seguro)\n\n", t.Neuroticism))

	// 4. Directivas de actuación (fijas)
	sb.WriteString("INSTRUÇÕES CRÍTICAS DE ATUAÇÃO:\n")
	for i, rule := range actingInstructions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rule))
	}
	sb.WriteString("\nResponda naturalmente ao input do gerente.")

	return sb.String()
}

var actingInstructions = []string{
	"Mantenha a resposta curta (máximo 40 palavras).",
	"Se Neuroticismo > 70: Aja defensivamente, gagueje se for pressionado, mostre ansiedade.",
	"Se Amabilidade < 30: Seja seco, direto, questione a autoridade ou o feedback.",
	"Se Abertura < 30: Rejeite novas ideias ou mudanças de processo.",
	"Se for DEMISSÃO (FIRING) e Neuroticismo alto: Pode chorar, ficar em choque ou implorar.",
	"Se for DEMISSÃO (FIRING) e Amabilidade baixa: Fique com raiva, ameace processos ou seja sarcástico.",
}

// ToChatHistory reetiqueta los turnos para el proveedor: gestor -> user, el resto -> assistant.
// Solo el gestor habla como usuario; "ai", "model" o "persona" son turnos del personaje.
// El orden se conserva.
func ToChatHistory(turns []domain.Turn) []llm.ChatMessage {
	out := make([]llm.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		role := llm.RoleAssistant
		if turn.Speaker == domain.SpeakerManager {
			role = llm.RoleUser
		}
		out = append(out, llm.ChatMessage{Role: role, Content: turn.Text})
	}
	return out
}
