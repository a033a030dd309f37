package session

import (
	"sync"
	"time"

	"github.com/stroopy/gameserver/network"
)

// Session is one websocket connection. A player may hold several sessions over
// the lifetime of a match (the client opens a fresh socket per screen), so the
// session id is the opaque connection id the coordinator binds roles to.
type Session struct {
	ID         string
	Conn       network.Connection
	Name       string
	RoomCode   string
	HostHint   bool // role hint carried on the upgrade query
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection, hostHint bool) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		HostHint:   hostHint,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) SetName(name string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Name = name
}

func (s *Session) GetName() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.Name
}

func (s *Session) SetRoomCode(code string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.RoomCode = code
}

func (s *Session) GetRoomCode() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.RoomCode
}

// Touch refreshes the activity timestamp. Sends happen from timer goroutines
// while heartbeats arrive on the reader, so the write stays under the mutex.
func (s *Session) Touch() {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.Touch()
	return s.Conn.Send(msgID, data)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks live sessions by connection id.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
