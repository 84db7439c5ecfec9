package service

import "twin-dojo/internal/domain"

// Framing es el encuadre de comportamiento de un tipo de sesión: lo usan tanto la
// directiva remota como la apertura de la conversación.
type Framing struct {
	SessionType     domain.SessionType `json:"session_type"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	OpeningLine     string             `json:"opening_line"`
	BehavioralBrief string             `json:"behavioral_brief"`
}

var framings = [...]Framing{
	domain.SessionFeedback: {
		Title:           "Feedback de Desempenho",
		Description:     "Alinhamento de expectativas e resultados.",
		OpeningLine:     "Oi chefe, queria falar comigo?",
		BehavioralBrief: "Reunião de feedback de desempenho. Você está ouvindo o que seu gestor tem a dizer sobre seu trabalho recente.",
	},
	domain.SessionFiring: {
		Title:           "Sessão de Desligamento",
		Description:     "Conduzir uma saída respeitosa e firme.",
		OpeningLine:     "Oi... recebi seu convite para a reunião. Está tudo bem?",
		BehavioralBrief: "Reunião de desligamento. Você está sendo demitido. Reaja emocionalmente de acordo com seu nível de Neuroticismo.",
	},
	domain.SessionConflict: {
		Title:           "Resolução de Conflito",
		Description:     "Mediar disputas entre membros do time.",
		OpeningLine:     "Oi. Você soube do que aconteceu no projeto?",
		BehavioralBrief: "Resolução de conflito. Você está sendo confrontado sobre um problema interpessoal com outro colega.",
	},
	domain.SessionPromotion: {
		Title:           "Conversa de Carreira",
		Description:     "Comunicar aumento ou novo cargo.",
		OpeningLine:     "Olá! Estou ansioso para saber sobre meu futuro na empresa.",
		BehavioralBrief: "Reunião de carreira. Você tem expectativas sobre seu futuro e salário.",
	},
	domain.SessionCoaching: {
		Title:           "Mentoria 1:1",
		Description:     "Desenvolvimento de soft skills.",
		OpeningLine:     "Oi chefe, queria falar comigo?",
		BehavioralBrief: "Sessão de mentoria. Você está aqui para aprender, mas pode ter resistências dependendo da sua Abertura.",
	},
}

// Falla la compilación si la tabla no cubre todas las variantes del enum.
var _ = [1]struct{}{}[len(framings)-domain.SessionTypeCount]

// Frame devuelve el encuadre del tipo de sesión. Un valor fuera del enum devuelve
// el encuadre de feedback; no es alcanzable desde ParseSessionType.
func Frame(st domain.SessionType) Framing {
	if !st.Valid() {
		st = domain.SessionFeedback
	}
	f := framings[st]
	f.SessionType = st
	return f
}

// AllFramings lista los encuadres en el orden del enum.
func AllFramings() []Framing {
	out := make([]Framing, 0, domain.SessionTypeCount)
	for _, st := range domain.AllSessionTypes() {
		out = append(out, Frame(st))
	}
	return out
}
