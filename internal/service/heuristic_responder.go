package service

import (
	"strings"

	"twin-dojo/internal/domain"
)

// HeuristicRule nombra cada regla de la tabla de respuestas locales.
type HeuristicRule string

const (
	RuleFiringDistress   HeuristicRule = "firing_distress"
	RuleFiringIndignant  HeuristicRule = "firing_indignant"
	RuleFiringResigned   HeuristicRule = "firing_resigned"
	RuleStressApologetic HeuristicRule = "stress_apologetic"
	RuleAnxious          HeuristicRule = "anxious"
	RuleChangeEnthusiasm HeuristicRule = "change_enthusiasm"
	RuleGrateful         HeuristicRule = "grateful"
	RuleDefensive        HeuristicRule = "defensive"
	RuleNeutral          HeuristicRule = "neutral"
)

const (
	replyFiringDistress   = "O quê? Como assim? Eu... eu não esperava por isso. O que eu vou fazer agora?"
	replyFiringIndignant  = "Sério? Depois de tudo que fiz? Isso é um erro enorme da sua parte."
	replyFiringResigned   = "Entendo. É uma notícia difícil, mas... quando é meu último dia?"
	replyStressApologetic = "Eu... eu não queria causar problemas. A pressão está muito grande ultimamente."
	replyAnxious          = "Você acha que meu trabalho está ruim? Eu sinto que todos estão me julgando."
	replyChangeEnthusiasm = "Claro, o que for melhor para o time. Conte comigo."
	replyGrateful         = "Obrigado pelo feedback, chefe. Agradeço muito o tempo."
	replyDefensive        = "Eu discordo. O jeito que faço funciona e traz resultados. Por que mudar?"
	replyNeutral          = "Entendi. Podemos ver os detalhes disso."
)

var (
	stressTriggers = []string{"prazo", "erro", "problema"}
	changeTriggers = []string{"mudar", "novo"}
)

type heuristicInput struct {
	traits      domain.TraitProfile
	sessionType domain.SessionType
	lowered     string
}

type heuristicEntry struct {
	rule  HeuristicRule
	when  func(in heuristicInput) bool
	reply string
}

func isFiring(in heuristicInput) bool { return in.sessionType == domain.SessionFiring }

// heuristicTable se evalúa en orden y gana la primera guarda verdadera.
// Las tres reglas de desligamiento van primero y la última de ellas captura todo
// FIRING, así el encuadre de despido nunca se mezcla con las reglas generales.
var heuristicTable = []heuristicEntry{
	{rule: RuleFiringDistress, reply: replyFiringDistress, when: func(in heuristicInput) bool {
		return isFiring(in) && in.traits.Neuroticism > 60
	}},
	{rule: RuleFiringIndignant, reply: replyFiringIndignant, when: func(in heuristicInput) bool {
		return isFiring(in) && in.traits.Agreeableness < 40
	}},
	{rule: RuleFiringResigned, reply: replyFiringResigned, when: isFiring},
	{rule: RuleStressApologetic, reply: replyStressApologetic, when: func(in heuristicInput) bool {
		return in.traits.Neuroticism > 70 && containsAny(in.lowered, stressTriggers)
	}},
	{rule: RuleAnxious, reply: replyAnxious, when: func(in heuristicInput) bool {
		return in.traits.Neuroticism > 70
	}},
	{rule: RuleChangeEnthusiasm, reply: replyChangeEnthusiasm, when: func(in heuristicInput) bool {
		return in.traits.Agreeableness > 70 && containsAny(in.lowered, changeTriggers)
	}},
	{rule: RuleGrateful, reply: replyGrateful, when: func(in heuristicInput) bool {
		return in.traits.Agreeableness > 70
	}},
	{rule: RuleDefensive, reply: replyDefensive, when: func(in heuristicInput) bool {
		return in.traits.Agreeableness < 30
	}},
	{rule: RuleNeutral, reply: replyNeutral, when: func(heuristicInput) bool { return true }},
}

func containsAny(s string, list []string) bool {
	for _, x := range list {
		if strings.Contains(s, x) {
			return true
		}
	}
	return false
}

// HeuristicRules devuelve los nombres de las reglas en orden de prioridad.
func HeuristicRules() []HeuristicRule {
	out := make([]HeuristicRule, 0, len(heuristicTable))
	for _, e := range heuristicTable {
		out = append(out, e.rule)
	}
	return out
}

// HeuristicDecision evalúa la tabla y devuelve la regla que disparó y su respuesta.
// Es pura: sin azar, sin reloj, sin red.
func HeuristicDecision(profile domain.TraitProfile, sessionType domain.SessionType, latestUtterance string) (HeuristicRule, string) {
	in := heuristicInput{
		traits:      profile,
		sessionType: sessionType,
		lowered:     strings.ToLower(latestUtterance),
	}
	for _, e := range heuristicTable {
		if e.when(in) {
			return e.rule, e.reply
		}
	}
	// inalcanzable: la última regla siempre aplica
	return RuleNeutral, replyNeutral
}

// HeuristicReply es la respuesta determinística de la persona sin modelo remoto.
func HeuristicReply(profile domain.TraitProfile, sessionType domain.SessionType, latestUtterance string) string {
	_, reply := HeuristicDecision(profile, sessionType, latestUtterance)
	return reply
}
