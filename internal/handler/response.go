package handler

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with. Data is set on
// success, Message on failure.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Data writes a success envelope with the given status code.
func Data(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

// Message writes a failure envelope with the given status code.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}
