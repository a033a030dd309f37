package network

// Client -> server messages.
const (
	MsgTypeHeartbeat      = 1
	MsgTypeCreateRoom     = 101
	MsgTypeJoinRoom       = 102
	MsgTypePlayerReady    = 103
	MsgTypeJoinGame       = 104
	MsgTypePlayerAnswer   = 105
	MsgTypeRequestRematch = 106
	MsgTypeLeaveGame      = 107
	MsgTypeJoinGameOver   = 108
	MsgTypeLeaveGameOver  = 109
)

// Server -> client messages.
const (
	MsgTypeRoomCreated        = 201
	MsgTypeJoinError          = 202
	MsgTypePlayerJoined       = 203
	MsgTypeGameStart          = 204
	MsgTypeRoundStart         = 205
	MsgTypeRoundFeedback      = 206
	MsgTypeRoundResult        = 207
	MsgTypeGameOver           = 208
	MsgTypeRematchRequested   = 209
	MsgTypeRematchAccepted    = 210
	MsgTypePlayerLeft         = 211
	MsgTypePlayerDisconnected = 212
	MsgTypeOpponentLeft       = 213
)
