package dto

type ChatRequest struct {
	UserInput string `json:"userInput" binding:"required"`
	UserName  string `json:"userName"`
}

type ChatResponse struct {
	BotResponse string `json:"botResponse"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
