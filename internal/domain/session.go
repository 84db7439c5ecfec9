package domain

import (
	"fmt"
	"strings"
)

// SessionType es el escenario social de una conversación de práctica.
type SessionType uint8

const (
	SessionFeedback SessionType = iota
	SessionFiring
	SessionConflict
	SessionPromotion
	SessionCoaching

	sessionTypeCount
)

// SessionTypeCount es la cantidad de variantes del enum; las tablas indexadas por
// SessionType deben tener exactamente este largo.
const SessionTypeCount = int(sessionTypeCount)

var sessionTypeNames = [...]string{
	SessionFeedback:  "FEEDBACK",
	SessionFiring:    "FIRING",
	SessionConflict:  "CONFLICT",
	SessionPromotion: "PROMOTION",
	SessionCoaching:  "COACHING",
}

// Falla la compilación si se agrega una variante sin nombre.
var _ = [1]struct{}{}[len(sessionTypeNames)-SessionTypeCount]

// AllSessionTypes devuelve todas las variantes en orden de declaración.
func AllSessionTypes() []SessionType {
	out := make([]SessionType, 0, SessionTypeCount)
	for st := SessionType(0); st < sessionTypeCount; st++ {
		out = append(out, st)
	}
	return out
}

func (s SessionType) Valid() bool {
	return s < sessionTypeCount
}

func (s SessionType) String() string {
	if !s.Valid() {
		return fmt.Sprintf("SessionType(%d)", uint8(s))
	}
	return sessionTypeNames[s]
}

// ParseSessionType acepta el nombre canónico sin distinguir mayúsculas.
func ParseSessionType(raw string) (SessionType, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for st, n := range sessionTypeNames {
		if n == name {
			return SessionType(st), nil
		}
	}
	return 0, fmt.Errorf("unknown session type %q", raw)
}

func (s SessionType) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid session type %d", uint8(s))
	}
	return []byte(sessionTypeNames[s]), nil
}

func (s *SessionType) UnmarshalText(text []byte) error {
	st, err := ParseSessionType(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
