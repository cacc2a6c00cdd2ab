package sessions

import (
	"encoding/json"
	"fmt"

	"github.com/medisense/backend/internal/domain/entities"
)

func encodeSession(s *entities.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*entities.Session, error) {
	var s entities.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if s.Selection == nil {
		s.Selection = entities.SymptomSelection{}
	}
	return &s, nil
}
