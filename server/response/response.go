package response

import "github.com/gin-gonic/gin"

// JSON writes the standard response envelope
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage(err),
		"status":  status,
	}
	c.JSON(status, responsedata)
}

func errMessage(err error) interface{} {
	if err == nil {
		return nil
	}
	return err.Error()
}
