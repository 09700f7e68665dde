package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/agui"
	"github.com/spetersoncode/a2abatch/batch"
)

// BatchRequest is the body of POST /v1/batches and /v1/batches/stream.
type BatchRequest struct {
	Items          []ab.Item `json:"items" binding:"required"`
	ContinueOnFail *bool     `json:"continueOnFail,omitempty"`

	// ThreadID and RunID are used in AG-UI lifecycle events when streaming.
	ThreadID string `json:"threadId,omitempty"`
	RunID    string `json:"runId,omitempty"`
}

func (s *Server) modeFor(req *BatchRequest) batch.Mode {
	if req.ContinueOnFail != nil {
		return batch.ModeFor(*req.ContinueOnFail)
	}
	return s.mode
}

func (s *Server) runner(req *BatchRequest) *batch.Runner {
	return batch.NewRunner(s.client,
		batch.WithMode(s.modeFor(req)),
		batch.WithLogger(s.logger),
	)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) agentCard(c *gin.Context) {
	card, err := s.client.CheckConnection(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, card)
}

func (s *Server) runBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	report, err := s.runner(&req).Run(c.Request.Context(), req.Items)
	if err != nil {
		c.Error(err)
		body := gin.H{"status": report.Status, "error": err.Error()}
		var abortErr *batch.AbortError
		if errors.As(err, &abortErr) {
			body["index"] = abortErr.Index
		}
		c.JSON(http.StatusBadGateway, body)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) streamBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	agui.SetSSEHeaders(c.Writer.Header())
	c.Status(http.StatusOK)

	sse := agui.NewSSEWriter(c.Writer)
	mapper := agui.NewMapper(req.ThreadID, req.RunID)
	log := s.logger.WithFields(logrus.Fields{
		"thread_id": mapper.ThreadID(),
		"run_id":    mapper.RunID(),
	})

	// An abort is reported to the client as RUN_ERROR.
	_, err := s.runner(&req).RunWithObserver(c.Request.Context(), req.Items, sse.Observer(mapper))
	if err != nil {
		log.WithError(err).Warn("streamed batch aborted")
	}
	if werr := sse.Err(); werr != nil {
		c.Error(werr)
		log.WithError(werr).Error("failed to write SSE event")
		return
	}
	log.WithField("events_sent", sse.Count()).Debug("stream completed")
}
