package memory

import (
	"encoding/json"
	"sync"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

// Store backs every in-memory repo. Sessions are kept as serialized
// documents so reads hand out independent copies, matching the
// behavior of the database adapter.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]storedSession
	execution map[string]ports.TurnExecutionRecord
	journal   map[string][]ports.TrailEvent
}

type storedSession struct {
	doc      []byte
	rngState uint32
	seed     uint32
	version  int64
}

func NewStore() *Store {
	return &Store{
		sessions:  make(map[string]storedSession),
		execution: make(map[string]ports.TurnExecutionRecord),
		journal:   make(map[string][]ports.TrailEvent),
	}
}

func execKey(slotID, key string) string {
	return slotID + "::" + key
}

func encodeSession(s *trail.Session) (storedSession, error) {
	doc, err := json.Marshal(s)
	if err != nil {
		return storedSession{}, err
	}
	return storedSession{
		doc:      doc,
		rngState: s.RNGState(),
		seed:     s.Seed,
		version:  s.Version,
	}, nil
}

func decodeSession(stored storedSession) (*trail.Session, error) {
	var s trail.Session
	if err := json.Unmarshal(stored.doc, &s); err != nil {
		return nil, err
	}
	s.RNG = trail.RestoreRNG(stored.rngState)
	return &s, nil
}
