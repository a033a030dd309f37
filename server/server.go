package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/rpc"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/stroopy/gameserver/config"
	"github.com/stroopy/gameserver/game"
	"github.com/stroopy/gameserver/logger"
	"github.com/stroopy/gameserver/models"
	"github.com/stroopy/gameserver/monitor"
	"github.com/stroopy/gameserver/network"
	"github.com/stroopy/gameserver/persistence"
	gameserver_rpc "github.com/stroopy/gameserver/rpc"
	"github.com/stroopy/gameserver/services"
	"github.com/stroopy/gameserver/session"
	"github.com/stroopy/gameserver/timer"

	"github.com/stroopy/gameserver/broadcast"
)

// GameServer is the connection gateway: it owns the websocket endpoint, the
// session registry and the leaderboard HTTP API, and maps transport events
// onto coordinator operations.
type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	sessionManager *session.Manager
	coordinator    *game.Coordinator
	leaderboard    *services.LeaderboardService
	mon            *monitor.Monitor
	rpcServer      *gameserver_rpc.Server
	timers         *timer.TimerManager
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.LeaderboardStore) *GameServer {
	s := &GameServer{
		cfg:            cfg,
		sessionManager: session.NewManager(),
		leaderboard:    services.NewLeaderboardService(store),
		mon:            monitor.NewMonitor("stroopy"),
		timers:         timer.NewTimerManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // clients connect from the game's web origin
			},
		},
	}

	notifier := broadcast.NewSessionNotifier(s.sessionManager)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	settings := game.Settings{
		TerritorySize:  cfg.Game.TerritorySize,
		RoomCodeLength: cfg.Game.RoomCodeLength,
		FeedbackDelay:  cfg.Game.FeedbackDelay(),
		NextRoundDelay: cfg.Game.NextRoundDelay(),
	}
	s.coordinator = game.NewCoordinator(game.NewMemoryStore(), notifier, s.timers, rng, logger.Log, settings)
	s.coordinator.SetStats(s.mon)

	rpcServer, err := gameserver_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(gameserver_rpc.NewLeaderboardRPC(s.leaderboard))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.mon.StartServer(s.cfg.Server.MetricsAddress)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/leaderboard/scores", s.handleSubmitScore)
	mux.HandleFunc("/api/leaderboard/top", s.handleTopScores)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Stroopy game server is running!"))
	})

	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	// The role hint rides the upgrade query so a reconnecting client can be
	// rebound to its seat without an account.
	hostHint := r.URL.Query().Get("role") == "host"
	s.handleConnection(conn, hostHint)
}

func (s *GameServer) handleConnection(conn *websocket.Conn, hostHint bool) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn, hostHint)
	s.sessionManager.Add(sess)
	s.mon.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.coordinator.Disconnect(sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.mon.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			start := time.Now()
			s.handlePacket(sess, packet)
			s.mon.IncMessagesReceived()
			s.mon.ObserveMessageLatency(time.Since(start))
		}
	}
}

// Inbound payload shapes.
type createRoomRequest struct {
	Username string `json:"username"`
}

type joinRoomRequest struct {
	Username string `json:"username"`
	RoomCode string `json:"roomCode"`
}

type roomRequest struct {
	RoomCode string `json:"roomCode"`
}

type answerRequest struct {
	RoomCode    string `json:"roomCode"`
	Answer      string `json:"answer"`
	TargetColor string `json:"targetColor"`
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()

	case network.MsgTypeCreateRoom:
		var req createRoomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		sess.SetName(req.Username)
		code := s.coordinator.CreateRoom(sess.GetID(), req.Username)
		sess.SetRoomCode(code)

	case network.MsgTypeJoinRoom:
		var req joinRoomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		sess.SetName(req.Username)
		if err := s.coordinator.JoinRoom(sess.GetID(), req.Username, req.RoomCode); err == nil {
			sess.SetRoomCode(req.RoomCode)
		}

	case network.MsgTypePlayerReady:
		var req roomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.coordinator.Ready(sess.GetID(), req.RoomCode)

	case network.MsgTypeJoinGame:
		var req roomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		sess.SetRoomCode(req.RoomCode)
		s.coordinator.JoinGame(sess.GetID(), req.RoomCode, sess.HostHint)

	case network.MsgTypePlayerAnswer:
		var req answerRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.coordinator.Answer(sess.GetID(), req.RoomCode, req.Answer, req.TargetColor)

	case network.MsgTypeRequestRematch:
		var req roomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.coordinator.RequestRematch(sess.GetID(), req.RoomCode)

	case network.MsgTypeLeaveGame:
		var req roomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.coordinator.LeaveGame(sess.GetID(), req.RoomCode)

	case network.MsgTypeJoinGameOver:
		var req roomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		sess.SetRoomCode(req.RoomCode)
		s.coordinator.JoinGameOver(sess.GetID(), req.RoomCode, sess.HostHint)

	case network.MsgTypeLeaveGameOver:
		var req roomRequest
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.coordinator.LeaveGameOver(sess.GetID(), req.RoomCode)

	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

// --- leaderboard HTTP API (collaborator surface, not the game core) ---

func (s *GameServer) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sub models.ScoreSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	entry, err := s.leaderboard.SubmitScore(sub)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Score submitted successfully",
		"entry":   entry,
	})
}

func (s *GameServer) handleTopScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.leaderboard.TopScores(limit)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"leaderboard": entries,
	})
}
