package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/sse"
)

const jobTopicPrefix = "job:"

// JobNotifier publishes batch job events to hub, keyed by job ID.
func JobNotifier(hub *sse.Hub) batch.Notifier {
	return batch.NotifierFunc(func(_ context.Context, e batch.Event) {
		hub.Publish(jobTopicPrefix+e.JobID, sse.Event{Type: string(e.Type), Data: e})
	})
}

// jobEvents streams job events. With ?jobId only that job's events are
// sent.
func (h *Handler) jobEvents(c *gin.Context) {
	if h.events == nil {
		server.RespondWithError(c, errors.ServiceUnavailable("job events"))
		return
	}
	topic := jobTopicPrefix + "*"
	if id := c.Query("jobId"); id != "" {
		topic = jobTopicPrefix + id
	}
	sse.Serve(h.events, c.Writer, c.Request, topic)
}
