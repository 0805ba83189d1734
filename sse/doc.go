// Package sse delivers server-sent events to HTTP subscribers.
//
// A Hub fans published events out to subscribed clients. Each client
// subscribes to a topic pattern in path.Match syntax and receives every
// event whose key matches it. Slow clients drop events instead of
// blocking the publisher.
//
// # Usage
//
//	hub := sse.NewHub(log)
//	router.GET("/events", func(c *gin.Context) {
//		sse.Serve(hub, c.Writer, c.Request, "job:*")
//	})
//	hub.Publish("job:42", sse.Event{Type: "job_status", Data: job})
package sse
