package http

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape:
// {"status":"success"|"error","data":...,"message":"..."}.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

func Success(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Envelope{Status: "success", Data: data, Message: message})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Status: "error", Message: message})
}
