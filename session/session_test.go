package session

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stroopy/gameserver/network"
)

// MockConnection satisfies network.Connection without a socket.
type MockConnection struct {
	mutex  sync.Mutex
	sent   []sentPacket
	closed bool
}

type sentPacket struct {
	msgID uint16
	data  []byte
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sent = append(m.sent, sentPacket{msgID: msgID, data: data})
	return nil
}

func (m *MockConnection) Close() error {
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr                { return nil }
func (m *MockConnection) SetHeartbeat(interval time.Duration) {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) {
	return nil, nil
}

func TestSessionAccessors(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("conn-1", conn, true)

	if sess.GetID() != "conn-1" {
		t.Errorf("expected id conn-1, got %s", sess.GetID())
	}
	if !sess.HostHint {
		t.Error("host hint should survive construction")
	}

	sess.SetName("alice")
	if sess.GetName() != "alice" {
		t.Errorf("expected name alice, got %s", sess.GetName())
	}

	sess.SetRoomCode("AB12CD")
	if sess.GetRoomCode() != "AB12CD" {
		t.Errorf("expected room code AB12CD, got %s", sess.GetRoomCode())
	}
}

func TestSessionSendAndClose(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("conn-1", conn, false)

	if err := sess.Send(201, []byte(`{"roomCode":"AB12CD"}`)); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(conn.sent) != 1 || conn.sent[0].msgID != 201 {
		t.Fatalf("expected one packet with msg id 201, got %+v", conn.sent)
	}

	if err := sess.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !conn.closed {
		t.Error("closing the session should close its connection")
	}
}

// Outbound sends come from timer goroutines while heartbeats land on the
// reader; both refresh the activity timestamp, so they must not race.
func TestSessionConcurrentActivity(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("conn-1", conn, false)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sess.Touch()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sess.Send(206, nil)
			}
		}()
	}
	wg.Wait()

	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	if len(conn.sent) != 400 {
		t.Fatalf("expected 400 sends, got %d", len(conn.sent))
	}
}

func TestManagerLifecycle(t *testing.T) {
	manager := NewManager()

	s1 := NewSession("conn-1", &MockConnection{}, true)
	s2 := NewSession("conn-2", &MockConnection{}, false)
	manager.Add(s1)
	manager.Add(s2)

	if manager.Count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", manager.Count())
	}

	got, exists := manager.Get("conn-1")
	if !exists || got != s1 {
		t.Fatal("Get should return the stored session")
	}

	manager.Remove("conn-1")
	if _, exists := manager.Get("conn-1"); exists {
		t.Fatal("removed session should not be found")
	}
	if manager.Count() != 1 {
		t.Fatalf("expected 1 session after removal, got %d", manager.Count())
	}
}
