package main

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// param prefers a posted form value over the query string.
func param(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(c.Query(key))
}

func intParam(c *gin.Context, key string) int {
	return atoi(param(c, key))
}

// atoi returns 0 for anything that is not a plain integer.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
