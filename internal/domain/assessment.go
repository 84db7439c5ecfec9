package domain

const (
	LikertMin     = 1
	LikertMax     = 5
	LikertNeutral = 3
)

// Polarity indica si acordar con la pregunta sube (+1) o baja (-1) el rasgo.
type Polarity int

const (
	PolarityPositive Polarity = 1
	PolarityNegative Polarity = -1
)

// Question es un ítem fijo del cuestionario de personalidad.
type Question struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Trait    Trait    `json:"trait"`
	Polarity Polarity `json:"polarity"`
}

// AssessmentResponse mapea id de pregunta (1..10) a un valor Likert (1..5).
type AssessmentResponse map[int]int
