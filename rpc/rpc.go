package rpc

import (
	"net"
	"net/rpc"

	"github.com/stroopy/gameserver/logger"
	"github.com/stroopy/gameserver/models"
	"github.com/stroopy/gameserver/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// LeaderboardRPC exposes leaderboard queries to sidecar tooling over net/rpc.
type LeaderboardRPC struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardRPC(ls *services.LeaderboardService) *LeaderboardRPC {
	return &LeaderboardRPC{leaderboard: ls}
}

type TopScoresArgs struct {
	Limit int
}

type TopScoresReply struct {
	Entries []models.LeaderboardEntry
}

func (l *LeaderboardRPC) TopScores(args *TopScoresArgs, reply *TopScoresReply) error {
	entries, err := l.leaderboard.TopScores(args.Limit)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}

type BestForUserArgs struct {
	Username string
}

type BestForUserReply struct {
	Entry *models.LeaderboardEntry
}

func (l *LeaderboardRPC) BestForUser(args *BestForUserArgs, reply *BestForUserReply) error {
	entry, err := l.leaderboard.BestForUser(args.Username)
	if err != nil {
		return err
	}
	reply.Entry = entry
	return nil
}
