package domain

const (
	TraitMin = 0
	TraitMax = 100
)

// Trait identifica un eje del modelo Big Five (OCEAN).
type Trait string

const (
	TraitOpenness          Trait = "openness"
	TraitConscientiousness Trait = "conscientiousness"
	TraitExtraversion      Trait = "extraversion"
	TraitAgreeableness     Trait = "agreeableness"
	TraitNeuroticism       Trait = "neuroticism"
)

// AllTraits devuelve los cinco ejes en orden O, C, E, A, N.
func AllTraits() []Trait {
	return []Trait{
		TraitOpenness,
		TraitConscientiousness,
		TraitExtraversion,
		TraitAgreeableness,
		TraitNeuroticism,
	}
}

// TraitProfile es el perfil OCEAN de una persona, cada eje en [0,100].
// Es un valor: se reemplaza entero, nunca se muta en sitio.
type TraitProfile struct {
	Openness          int `json:"openness"`          // Creatividad vs. conservadurismo
	Conscientiousness int `json:"conscientiousness"` // Orden vs. improvisación
	Extraversion      int `json:"extraversion"`      // Energía social
	Agreeableness     int `json:"agreeableness"`     // Amabilidad vs. desafío
	Neuroticism       int `json:"neuroticism"`       // Inestabilidad emocional
}

// ClampTrait lleva cualquier valor al rango [0,100].
func ClampTrait(v int) int {
	if v < TraitMin {
		return TraitMin
	}
	if v > TraitMax {
		return TraitMax
	}
	return v
}

// NewTraitProfile construye un perfil ya acotado.
func NewTraitProfile(openness, conscientiousness, extraversion, agreeableness, neuroticism int) TraitProfile {
	return TraitProfile{
		Openness:          ClampTrait(openness),
		Conscientiousness: ClampTrait(conscientiousness),
		Extraversion:      ClampTrait(extraversion),
		Agreeableness:     ClampTrait(agreeableness),
		Neuroticism:       ClampTrait(neuroticism),
	}
}

// NeutralTraitProfile es el perfil por defecto del creador de personas (todo en 50).
func NeutralTraitProfile() TraitProfile {
	return NewTraitProfile(50, 50, 50, 50, 50)
}

// Clamped devuelve una copia con todos los ejes dentro de rango.
func (p TraitProfile) Clamped() TraitProfile {
	return NewTraitProfile(p.Openness, p.Conscientiousness, p.Extraversion, p.Agreeableness, p.Neuroticism)
}

// Value lee un eje por nombre. Un nombre desconocido devuelve 0.
func (p TraitProfile) Value(t Trait) int {
	switch t {
	case TraitOpenness:
		return p.Openness
	case TraitConscientiousness:
		return p.Conscientiousness
	case TraitExtraversion:
		return p.Extraversion
	case TraitAgreeableness:
		return p.Agreeableness
	case TraitNeuroticism:
		return p.Neuroticism
	}
	return 0
}

// with devuelve una copia con un eje reemplazado (acotado).
func (p TraitProfile) with(t Trait, v int) TraitProfile {
	v = ClampTrait(v)
	switch t {
	case TraitOpenness:
		p.Openness = v
	case TraitConscientiousness:
		p.Conscientiousness = v
	case TraitExtraversion:
		p.Extraversion = v
	case TraitAgreeableness:
		p.Agreeableness = v
	case TraitNeuroticism:
		p.Neuroticism = v
	}
	return p
}

// TraitProfileFromScores arma un perfil desde un mapa eje->puntaje; ejes ausentes quedan en 0.
func TraitProfileFromScores(scores map[Trait]int) TraitProfile {
	var p TraitProfile
	for _, t := range AllTraits() {
		p = p.with(t, scores[t])
	}
	return p
}
