package pkg

// Action is a command verb typed by the player.
type Action string

const (
	ActionCrew    Action = "crew"
	ActionPrime   Action = "prime"
	ActionBinary  Action = "binary"
	ActionMulti   Action = "multi"
	ActionStatus  Action = "status"
	ActionQuit    Action = "quit"
	ActionBack    Action = "back"
	ActionUpgrade Action = "upgrade"
	ActionYes     Action = "yes"
	ActionNo      Action = "no"
)
