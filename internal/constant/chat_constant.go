package constant

const (
	ChatSenderUser = "user"
	ChatSenderBot  = "bot"

	// ChatErrorReply is shown in the transcript when the prompt service
	// fails. It is never persisted.
	ChatErrorReply = "Sorry, I encountered an error. Please try again."
)
