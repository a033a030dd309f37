package game

import "sync"

// Store is the process-wide room registry, owned by the coordinator. Injected
// as an interface so tests can observe or substitute it.
type Store interface {
	Get(code string) (*Room, bool)
	Put(room *Room)
	Delete(code string)
	Len() int
	// Range calls fn for each room until fn returns false.
	Range(fn func(*Room) bool)
}

// MemoryStore is the in-process Store used in production; rooms never outlive
// the process.
type MemoryStore struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]*Room)}
}

func (s *MemoryStore) Get(code string) (*Room, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	room, exists := s.rooms[code]
	return room, exists
}

func (s *MemoryStore) Put(room *Room) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.rooms[room.Code] = room
}

func (s *MemoryStore) Delete(code string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.rooms, code)
}

func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.rooms)
}

func (s *MemoryStore) Range(fn func(*Room) bool) {
	s.mutex.RLock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	s.mutex.RUnlock()

	for _, room := range rooms {
		if !fn(room) {
			return
		}
	}
}
