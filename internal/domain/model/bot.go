package model

// BotReply is the canned answer to a support bot message.
type BotReply struct {
	Intent      string
	Message     string
	Suggestions []string
}

// BotStats counts bot interactions since process start.
type BotStats struct {
	Total    int64
	ByIntent map[string]int64
}
