package command

// Command describes one DM command for routing and help text.
type Command struct {
	Name        string
	Usage       string
	Description string
}

// AllCommands contains all of the commands the bot understands.
var AllCommands = []Command{
	{Name: "start", Usage: "/start", Description: "show help"},
	{Name: "submit", Usage: "/submit", Description: "submit a post for T1/T2"},
	{Name: "metrics", Usage: "/metrics <ugc_id>", Description: "attach metrics proof for T2"},
	{Name: "status", Usage: "/status <ugc_id>", Description: "check status"},
	{Name: "cancel", Usage: "/cancel", Description: "abandon the current submission"},
}
