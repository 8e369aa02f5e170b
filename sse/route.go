package sse

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/shellkit/validation"
)

// topicPatternLimit bounds a single subscription so one client cannot
// register an unbounded match set.
const topicPatternLimit = 16

// GinHandler returns a Gin handler that serves the event stream.
// Subscriptions come from repeated "topic" query parameters, each a
// glob pattern; no parameters means every topic.
//
//	engine.GET("/events", sse.GinHandler(hub))
func GinHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		patterns := c.QueryArray("topic")

		v := validation.New()
		v.Max("topic", len(patterns), topicPatternLimit)
		for i, p := range patterns {
			field := fmt.Sprintf("topic[%d]", i)
			v.Required(field, p)
			v.MaxLength(field, p, 128)
			v.Pattern(field, p, `^[a-zA-Z0-9._*-]+$`)
		}
		if appErr := v.Validate(); appErr != nil {
			c.JSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}

		ServeSSE(hub, c.Writer, c.Request, patterns...)
	}
}
