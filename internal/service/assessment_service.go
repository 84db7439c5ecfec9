package service

import (
	"errors"
	"math"
	"sync"

	"go.uber.org/zap"

	"twin-dojo/internal/domain"
)

var (
	ErrAssessmentInvalidInput = errors.New("assessment invalid input")
	ErrAssessmentIncomplete   = errors.New("assessment incomplete")
	ErrAssessmentConsumed     = errors.New("assessment already scored")
)

// questionnaire es el cuestionario fijo: dos ítems por rasgo, uno directo y uno invertido.
var questionnaire = []domain.Question{
	{ID: 1, Text: "Tenho excelentes ideias e muita imaginação.", Trait: domain.TraitOpenness, Polarity: domain.PolarityPositive},
	{ID: 2, Text: "Tenho dificuldade em entender conceitos abstratos.", Trait: domain.TraitOpenness, Polarity: domain.PolarityNegative},
	{ID: 3, Text: "Estou sempre preparado e sigo um cronograma.", Trait: domain.TraitConscientiousness, Polarity: domain.PolarityPositive},
	{ID: 4, Text: "Deixo meus pertences espalhados por aí.", Trait: domain.TraitConscientiousness, Polarity: domain.PolarityNegative},
	{ID: 5, Text: "Sinto-me confortável perto de pessoas e começo conversas.", Trait: domain.TraitExtraversion, Polarity: domain.PolarityPositive},
	{ID: 6, Text: "Fico quieto perto de estranhos.", Trait: domain.TraitExtraversion, Polarity: domain.PolarityNegative},
	{ID: 7, Text: "Tenho um coração mole e me preocupo com os outros.", Trait: domain.TraitAgreeableness, Polarity: domain.PolarityPositive},
	{ID: 8, Text: "Começo disputas e insulto pessoas facilmente.", Trait: domain.TraitAgreeableness, Polarity: domain.PolarityNegative},
	{ID: 9, Text: "Fico estressado e perturbado facilmente.", Trait: domain.TraitNeuroticism, Polarity: domain.PolarityPositive},
	{ID: 10, Text: "Sou relaxado na maior parte do tempo.", Trait: domain.TraitNeuroticism, Polarity: domain.PolarityNegative},
}

const itemsPerTrait = 2

// Questionnaire devuelve una copia del cuestionario OCEAN fijo.
func Questionnaire() []domain.Question {
	return append([]domain.Question(nil), questionnaire...)
}

func findQuestion(id int) (domain.Question, bool) {
	for _, q := range questionnaire {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

func validLikert(v int) bool {
	return v >= domain.LikertMin && v <= domain.LikertMax
}

// ScoreAssessment convierte las respuestas Likert en un perfil normalizado.
// Es total: una respuesta ausente o fuera de rango cuenta como neutral (3).
func ScoreAssessment(answers domain.AssessmentResponse) domain.TraitProfile {
	rawSums := make(map[domain.Trait]int, len(domain.AllTraits()))
	for _, q := range questionnaire {
		v, ok := answers[q.ID]
		if !ok || !validLikert(v) {
			v = domain.LikertNeutral
		}
		if q.Polarity == domain.PolarityNegative {
			v = (domain.LikertMax + domain.LikertMin) - v
		}
		rawSums[q.Trait] += v
	}

	scores := make(map[domain.Trait]int, len(rawSums))
	for _, t := range domain.AllTraits() {
		scores[t] = normalizeTraitSum(rawSums[t])
	}
	return domain.TraitProfileFromScores(scores)
}

// normalizeTraitSum lleva una suma cruda [2,10] a [0,100] redondeando mitades hacia arriba.
func normalizeTraitSum(sum int) int {
	minSum := float64(itemsPerTrait * domain.LikertMin)
	maxSum := float64(itemsPerTrait * domain.LikertMax)
	pct := (float64(sum) - minSum) / (maxSum - minSum) * 100
	return domain.ClampTrait(int(math.Floor(pct + 0.5)))
}

// Assessment acumula respuestas una a una y se puntúa una sola vez.
type Assessment struct {
	mu       sync.Mutex
	answers  domain.AssessmentResponse
	consumed bool
	logger   *zap.Logger
}

func NewAssessment(logger *zap.Logger) *Assessment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessment{
		answers: make(domain.AssessmentResponse, len(questionnaire)),
		logger:  logger,
	}
}

// Answer registra (o corrige) la respuesta a una pregunta.
func (a *Assessment) Answer(questionID, value int) error {
	if _, ok := findQuestion(questionID); !ok || !validLikert(value) {
		return ErrAssessmentInvalidInput
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.consumed {
		return ErrAssessmentConsumed
	}
	a.answers[questionID] = value
	return nil
}

// Progress devuelve el porcentaje respondido, redondeado.
func (a *Assessment) Progress() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(math.Floor(float64(len(a.answers))/float64(len(questionnaire))*100 + 0.5))
}

func (a *Assessment) Complete() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.answers) == len(questionnaire)
}

// Score exige el cuestionario completo y consume el acumulador.
func (a *Assessment) Score() (domain.TraitProfile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.consumed {
		return domain.TraitProfile{}, ErrAssessmentConsumed
	}
	if len(a.answers) != len(questionnaire) {
		return domain.TraitProfile{}, ErrAssessmentIncomplete
	}
	profile := ScoreAssessment(a.answers)
	a.consumed = true
	a.answers = nil
	a.logger.Info("assessment scored",
		zap.Int("openness", profile.Openness),
		zap.Int("conscientiousness", profile.Conscientiousness),
		zap.Int("extraversion", profile.Extraversion),
		zap.Int("agreeableness", profile.Agreeableness),
		zap.Int("neuroticism", profile.Neuroticism),
	)
	return profile, nil
}
