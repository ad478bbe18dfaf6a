package constant

const (
	// ConnectionMessageTemplate is the system message that tells the agents
	// which database the session points at.
	ConnectionMessageTemplate = `Use this DB Connection URL to connect to the database:
%s`

	NoResponseGenerated = "No response generated."

	ChatHistoryOrderChronological = "chronological"
	ChatHistoryOrderNewestFirst   = "newest_first"
)
