package dto

// ChatRequest is the body of POST /api/v1/chat.
//
// ConversationID is optional: when empty, a new conversation is created and
// its ID is returned in the response so follow-up questions can reference it.
type ChatRequest struct {
	ConversationID string `json:"conversation_id,omitempty" example:"0b1e9a62-6c3e-4a9c-9f51-0a9f5a2f8f11"`
	Message        string `json:"message" binding:"required" example:"What are the top 5 companies by transaction volume today?"`
}

// ChatResponse carries the agent's answer for one chat turn.
type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	Answer         string `json:"answer"`
	Turns          int    `json:"turns"` // messages in the conversation transcript so far
}
