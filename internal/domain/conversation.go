package domain

import "time"

// Conversation es una práctica en curso entre el gestor y una persona.
// Employee es una foto tomada al iniciar: cambiar el perfil después no afecta la sesión.
type Conversation struct {
	ID          string      `json:"id"`
	Employee    Employee    `json:"employee"`
	SessionType SessionType `json:"session_type"`
	Turns       []Turn      `json:"turns"`
	StartedAt   time.Time   `json:"started_at"`
	EndedAt     *time.Time  `json:"ended_at,omitempty"`
}

func (c Conversation) Ended() bool {
	return c.EndedAt != nil
}

// Clone copia la conversación sin compartir el slice de turnos.
func (c Conversation) Clone() Conversation {
	c.Turns = append([]Turn(nil), c.Turns...)
	c.Employee.History = append([]SessionSummary(nil), c.Employee.History...)
	if c.EndedAt != nil {
		ended := *c.EndedAt
		c.EndedAt = &ended
	}
	return c
}
