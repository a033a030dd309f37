package game

import "testing"

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore()

	room := NewRoom("AB12CD", "conn-1", "alice", 14)
	store.Put(room)

	got, exists := store.Get("AB12CD")
	if !exists {
		t.Fatal("Get should find the stored room")
	}
	if got != room {
		t.Fatal("Get should return the same room instance")
	}
	if store.Len() != 1 {
		t.Fatalf("expected store length 1, got %d", store.Len())
	}

	store.Delete("AB12CD")
	if _, exists := store.Get("AB12CD"); exists {
		t.Fatal("Get should not find a deleted room")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got length %d", store.Len())
	}
}

func TestMemoryStore_RangeStopsEarly(t *testing.T) {
	store := NewMemoryStore()
	store.Put(NewRoom("AAAAAA", "c1", "a", 14))
	store.Put(NewRoom("BBBBBB", "c2", "b", 14))
	store.Put(NewRoom("CCCCCC", "c3", "c", 14))

	visited := 0
	store.Range(func(*Room) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("Range should stop after the callback returns false, visited %d", visited)
	}
}

func TestRoom_RoleResolution(t *testing.T) {
	room := NewRoom("AB12CD", "host-1", "alice", 14)
	room.GuestConn = "guest-1"

	if role, ok := room.RoleOf("host-1"); !ok || role != RoleHost {
		t.Errorf("host-1 should resolve to host, got %v %v", role, ok)
	}
	if role, ok := room.RoleOf("guest-1"); !ok || role != RoleGuest {
		t.Errorf("guest-1 should resolve to guest, got %v %v", role, ok)
	}
	if _, ok := room.RoleOf("stranger"); ok {
		t.Error("unknown connection should not resolve to a role")
	}
	if _, ok := room.RoleOf(""); ok {
		t.Error("empty connection id should never resolve, even with a vacant seat")
	}

	if room.OpponentConn("host-1") != "guest-1" {
		t.Error("host's opponent should be the guest")
	}
}

func TestRoom_RebindOnlyUnknownConnections(t *testing.T) {
	room := NewRoom("AB12CD", "host-1", "alice", 14)
	room.GuestConn = "guest-1"

	// A connection already bound to a seat is left alone.
	room.Rebind("host-1", false)
	if room.GuestConn != "guest-1" {
		t.Fatal("rebinding an already-bound connection must not steal a seat")
	}

	// A fresh connection takes over the seat its hint names.
	room.Rebind("host-2", true)
	if room.HostConn != "host-2" {
		t.Fatalf("expected host seat rebound to host-2, got %s", room.HostConn)
	}
}
