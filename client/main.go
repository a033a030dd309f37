// Console client for poking at the game server by hand.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateRoom     = 101
	MsgTypeJoinRoom       = 102
	MsgTypePlayerReady    = 103
	MsgTypeJoinGame       = 104
	MsgTypePlayerAnswer   = 105
	MsgTypeRequestRematch = 106
	MsgTypeLeaveGame      = 107
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	role := flag.String("role", "guest", "seat hint: host or guest")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws", RawQuery: "role=" + *role}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			if len(message) < 4 {
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			log.Printf("<- msg %d: %s", msgID, message[4:])
		}
	}()

	log.Println("Commands: create <name> | join <name> <code> | ready <code> | game <code> | answer <code> <word> <target> | rematch <code> | leave <code>")

	// Input loop
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			var err error
			switch fields[0] {
			case "create":
				if len(fields) == 2 {
					err = send(c, MsgTypeCreateRoom, map[string]string{"username": fields[1]})
				}
			case "join":
				if len(fields) == 3 {
					err = send(c, MsgTypeJoinRoom, map[string]string{"username": fields[1], "roomCode": fields[2]})
				}
			case "ready":
				if len(fields) == 2 {
					err = send(c, MsgTypePlayerReady, map[string]string{"roomCode": fields[1]})
				}
			case "game":
				if len(fields) == 2 {
					err = send(c, MsgTypeJoinGame, map[string]string{"roomCode": fields[1]})
				}
			case "answer":
				if len(fields) == 4 {
					err = send(c, MsgTypePlayerAnswer, map[string]string{
						"roomCode": fields[1], "answer": fields[2], "targetColor": fields[3],
					})
				}
			case "rematch":
				if len(fields) == 2 {
					err = send(c, MsgTypeRequestRematch, map[string]string{"roomCode": fields[1]})
				}
			case "leave":
				if len(fields) == 2 {
					err = send(c, MsgTypeLeaveGame, map[string]string{"roomCode": fields[1]})
				}
			default:
				log.Printf("Unknown command: %s", fields[0])
			}
			if err != nil {
				log.Printf("Send error: %v", err)
			}
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Interrupted, closing connection")
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}
