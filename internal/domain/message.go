package domain

import "time"

// Speaker distingue quién dijo cada turno.
type Speaker string

const (
	SpeakerManager Speaker = "user"
	SpeakerPersona Speaker = "persona"
)

// Turn es una intervención literal dentro de la conversación.
type Turn struct {
	ID        string    `json:"id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ReplySource indica por qué camino se generó la respuesta de la persona.
type ReplySource string

const (
	ReplySourceHeuristic   ReplySource = "heuristic"
	ReplySourceRemote      ReplySource = "remote"
	ReplySourcePlaceholder ReplySource = "placeholder"
	ReplySourceApology     ReplySource = "fallback_apology"
)

// Reply es la respuesta de la persona junto con su origen.
type Reply struct {
	Text   string      `json:"text"`
	Source ReplySource `json:"source"`
}
