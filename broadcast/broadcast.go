// broadcast/broadcast.go
package broadcast

import (
	"encoding/json"
	"errors"

	"github.com/stroopy/gameserver/session"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionNotifier delivers coordinator events to live sessions as JSON
// payloads in framed packets. Implements game.Notifier.
type SessionNotifier struct {
	sessions *session.Manager
}

func NewSessionNotifier(sessions *session.Manager) *SessionNotifier {
	return &SessionNotifier{sessions: sessions}
}

func (n *SessionNotifier) Notify(connID string, msgID uint16, payload interface{}) error {
	sess, exists := n.sessions.Get(connID)
	if !exists {
		return ErrSessionNotFound
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return sess.Send(msgID, data)
}
