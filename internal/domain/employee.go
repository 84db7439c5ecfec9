package domain

import "time"

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// Employee es la identidad de la persona simulada (el "gemelo digital").
type Employee struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Role      string           `json:"role"`
	Gender    Gender           `json:"gender"`
	AvatarURL string           `json:"avatar_url,omitempty"`
	Traits    TraitProfile     `json:"traits"`
	History   []SessionSummary `json:"history"`
	CreatedAt time.Time        `json:"created_at"`
}

// SessionSummary resume una práctica pasada. Solo se muestra; el motor no la consulta.
type SessionSummary struct {
	ID      string      `json:"id"`
	Date    time.Time   `json:"date"`
	Type    SessionType `json:"type"`
	Score   int         `json:"score"` // 0-100
	Summary string      `json:"summary"`
}

// WithTraits devuelve una copia con el perfil reemplazado.
func (e Employee) WithTraits(p TraitProfile) Employee {
	e.Traits = p.Clamped()
	e.History = append([]SessionSummary(nil), e.History...)
	return e
}

// WithHistoryEntry devuelve una copia con la entrada agregada al final.
// Si ya existe una entrada con el mismo ID se reemplaza en su lugar.
func (e Employee) WithHistoryEntry(entry SessionSummary) Employee {
	entry.Score = ClampTrait(entry.Score)
	history := make([]SessionSummary, 0, len(e.History)+1)
	history = append(history, e.History...)
	for i := range history {
		if entry.ID != "" && history[i].ID == entry.ID {
			history[i] = entry
			e.History = history
			return e
		}
	}
	e.History = append(history, entry)
	return e
}
