package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/diarization"
	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/validation"
)

// submit creates a batch job from a multipart upload. Files are sent in
// "audioFiles"; "jobName", "locale", "minSpeakers" and "maxSpeakers" are
// optional form fields.
func (h *Handler) submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["audioFiles"]) == 0 {
		server.RespondWithError(c, errors.InvalidAudioFile("", "No files uploaded"))
		return
	}
	headers := form.File["audioFiles"]

	rule := h.cfg.batchRule()
	files := make([]batch.AudioFile, len(headers))
	for i, fh := range headers {
		if err := rule.check(fh); err != nil {
			server.RespondWithError(c, err)
			return
		}
		files[i] = uploadedFile(fh)
	}

	minSpeakers, err := formInt(c, "minSpeakers")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	maxSpeakers, err := formInt(c, "maxSpeakers")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	req := batch.SubmitRequest{
		Files:       files,
		DisplayName: c.DefaultPostForm("jobName", "Batch Job "+h.now().Format("2006-01-02 15:04:05")),
		Locale:      c.PostForm("locale"),
		Speakers:    diarization.Range{Min: minSpeakers, Max: maxSpeakers},
	}
	if err := validation.New().
		Required("jobName", req.DisplayName).
		MaxLength("jobName", req.DisplayName, 256).
		Locale("locale", req.Locale).
		Error(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	job, err := h.batch.Submit(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Batch job created successfully with %d file(s)", len(files)),
		"job":     job,
	})
}

func uploadedFile(fh *multipart.FileHeader) batch.AudioFile {
	return batch.AudioFile{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

type refreshRequest struct {
	CachedJobs   []batch.Job `json:"cachedJobs"`
	ForceRefresh bool        `json:"forceRefresh"`
}

func (h *Handler) listJobs(c *gin.Context) {
	req, ok := h.pageRequest(c)
	if !ok {
		return
	}
	req.ForceRefresh = c.Query("forceRefresh") == "true"
	h.respondJobs(c, req)
}

// refreshJobs lists jobs reusing the caller's cached terminal jobs.
func (h *Handler) refreshJobs(c *gin.Context) {
	req, ok := h.pageRequest(c)
	if !ok {
		return
	}
	var body refreshRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &body) {
		return
	}
	req.Cached = body.CachedJobs
	req.ForceRefresh = body.ForceRefresh
	if len(body.CachedJobs) > 0 {
		h.log.Info("received cached jobs from client", logger.Fields(
			"cached", len(body.CachedJobs), "force_refresh", body.ForceRefresh))
	}
	h.respondJobs(c, req)
}

func (h *Handler) pageRequest(c *gin.Context) (batch.ListRequest, bool) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		server.RespondWithError(c, err)
		return batch.ListRequest{}, false
	}
	top, err := queryInt(c, "top", 0)
	if err != nil {
		server.RespondWithError(c, err)
		return batch.ListRequest{}, false
	}
	return batch.ListRequest{Skip: skip, Top: top}, true
}

func (h *Handler) respondJobs(c *gin.Context, req batch.ListRequest) {
	res := h.batch.List(c.Request.Context(), req)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"jobs":      res.Jobs,
		"count":     len(res.Jobs),
		"fromCache": res.FromCache,
		"degraded":  res.Degraded,
	})
}

func (h *Handler) jobStatus(c *gin.Context) {
	id := c.Param("id")
	job, deg := h.batch.GetStatus(c.Request.Context(), id)
	if job == nil {
		server.RespondWithError(c, errors.NotFound("job", id).WithDetail("reason", deg.Reason))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}

func (h *Handler) jobFiles(c *gin.Context) {
	files, deg := h.batch.ListResultFiles(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"files":    files,
		"count":    len(files),
		"degraded": deg,
	})
}

type resultsRequest struct {
	FileIndices []int `json:"fileIndices"`
}

// jobResults merges a job's result files. POST selects files by index;
// GET merges the first result file.
func (h *Handler) jobResults(c *gin.Context) {
	var req resultsRequest
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
		h.log.Info("merging selected result files", logger.Fields(
			logger.FieldJobID, c.Param("id"), "selected", len(req.FileIndices)))
	}

	res, err := h.batch.Results(c.Request.Context(), c.Param("id"), req.FileIndices)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) deleteJob(c *gin.Context) {
	id := c.Param("id")
	if err := h.batch.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Job %s deleted successfully", id),
	})
}
