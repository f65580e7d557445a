package api

import (
	"sync"

	"github.com/google/uuid"
)

// GenerationStore keeps finished generations so they can be fetched and
// deleted by id.
type GenerationStore struct {
	mu          sync.Mutex
	generations map[string]GenerationResponse
}

func NewGenerationStore() *GenerationStore {
	return &GenerationStore{
		generations: make(map[string]GenerationResponse),
	}
}

func (s *GenerationStore) Put(resp GenerationResponse) {
	s.mu.Lock()
	s.generations[resp.ID] = resp
	s.mu.Unlock()
}

func (s *GenerationStore) Get(id string) (GenerationResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.generations[id]
	return resp, ok
}

func (s *GenerationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.generations[id]; !ok {
		return false
	}
	delete(s.generations, id)
	return true
}

func newGenerationID() string {
	return "gen-" + uuid.NewString()
}
