package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	DefaultSessionTitle = "New Chat"
	DefaultGroupName    = "uncategorized"

	// Sentinel reply contents. The /chat contract returns these inside a
	// well-formed assistant envelope instead of an HTTP error so a broken
	// model never looks like a backend outage to the chat view.
	SentinelModelNotLoaded  = "Error: model is not loaded."
	SentinelGenerationError = "Error during generation."
)

func IsValidRole(role string) bool {
	switch role {
	case ChatMessageRoleUser, ChatMessageRoleAssistant, ChatMessageRoleSystem:
		return true
	}
	return false
}
