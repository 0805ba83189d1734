package speechapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/diarization"
	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{Key: "secret", Endpoint: srv.URL}, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestConfig_URLs(t *testing.T) {
	cfg := Config{Key: "k", Region: "westeurope"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.BaseURL(); got != "https://westeurope.api.cognitive.microsoft.com/speechtotext/v3.1" {
		t.Errorf("unexpected base url %s", got)
	}
	if got := cfg.ModelsURL(); got != "https://westeurope.api.cognitive.microsoft.com/speechtotext/v3.2/models" {
		t.Errorf("unexpected models url %s", got)
	}

	missing := Config{Region: "westeurope"}
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := New(Config{Key: "k"}, logger.Nop()); errors.CodeOf(err) != errors.ErrCodeConfiguration {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestSubmitJob(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/speechtotext/v3.1/transcriptions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(KeyHeader) != "secret" {
			t.Error("missing subscription key")
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		props := body["properties"].(map[string]any)
		if props["diarizationEnabled"] != true || props["punctuationMode"] != "DictatedAndAutomatic" || props["profanityFilterMode"] != "Masked" {
			t.Errorf("unexpected properties %v", props)
		}
		speakers := props["diarization"].(map[string]any)["speakers"].(map[string]any)
		if speakers["minCount"] != float64(2) || speakers["maxCount"] != float64(4) {
			t.Errorf("unexpected speakers %v", speakers)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"self":"https://x/speechtotext/v3.1/transcriptions/job-42","status":"NotStarted","displayName":"calls"}`))
	})

	job, err := c.SubmitJob(context.Background(), batch.Submission{
		ContentURLs: []string{"https://blob/c/a.wav?se=x"},
		Locale:      "en-US",
		DisplayName: "calls",
		Speakers:    diarization.Range{Min: 2, Max: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != "job-42" || job.Status != batch.StatusNotStarted {
		t.Errorf("unexpected job %+v", job)
	}
}

func TestGetJob_ParsesRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speechtotext/v3.1/transcriptions/abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"self": "https://x/transcriptions/abc",
			"status": "Failed",
			"createdDateTime": "2026-03-01T10:00:00Z",
			"lastActionDateTime": "not a time",
			"locale": "de-DE",
			"contentUrls": ["https://blob/c/11111111-2222-3333-4444-555555555555_meeting.wav?sv=1&se=2030-01-01T00:00:00Z"],
			"properties": {"duration": "PT1M30S", "succeededCount": 0, "failedCount": 1, "error": {"code": "InvalidData", "message": "audio unreadable"}},
			"error": {"code": "InvalidData"}
		}`))
	})

	job, err := c.GetJob(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != "abc" || job.DisplayName != "Unknown" || job.Status != batch.StatusFailed {
		t.Errorf("unexpected job %+v", job)
	}
	if job.CreatedAt == nil || job.CreatedAt.Day() != 1 || job.LastActionAt != nil {
		t.Errorf("unexpected timestamps %v %v", job.CreatedAt, job.LastActionAt)
	}
	if len(job.Files) != 1 || job.Files[0] != "meeting.wav" {
		t.Errorf("unexpected files %v", job.Files)
	}
	if job.Error != "InvalidData" {
		t.Errorf("unexpected error text %q", job.Error)
	}
	p := job.Properties
	if p == nil || p.DurationTicks == nil || *p.DurationTicks != 900_000_000 {
		t.Fatalf("unexpected properties %+v", p)
	}
	if *p.FailedCount != 1 || p.ErrorMessage != "audio unreadable" {
		t.Errorf("unexpected properties %+v", p)
	}
}

func TestListJobs_Paging(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("skip") != "20" || r.URL.Query().Get("top") != "10" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"values":[{"self":"https://x/transcriptions/a","status":"Running"},{"id":"b"}]}`))
	})

	jobs, err := c.ListJobs(context.Background(), 20, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != "a" || jobs[1].ID != "b" || jobs[1].Status != batch.StatusUnknown {
		t.Errorf("unexpected jobs %+v", jobs)
	}
}

func TestListJobFiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speechtotext/v3.1/transcriptions/abc/files" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"values":[
			{"kind":"Transcription","name":"contenturl_0.json","links":{"contentUrl":"https://r/0.json?se=x"},"properties":{"size":120}},
			{"kind":"TranscriptionReport","name":"report.json","links":{"contentUrl":"https://r/report.json"}}
		]}`))
	})

	files, err := c.ListJobFiles(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := batch.FileEntry{Kind: batch.KindTranscription, Name: "contenturl_0.json", ContentURL: "https://r/0.json?se=x", Size: 120}
	if len(files) != 2 || files[0] != want || files[1].Kind != batch.KindTranscriptionReport {
		t.Errorf("unexpected files %+v", files)
	}
}

func TestDeleteJob(t *testing.T) {
	var called atomic.Bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		called.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteJob(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called.Load() {
		t.Error("delete was not sent")
	}
}

func TestPlatformError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"InvalidPayload"}`))
	})

	_, err := c.GetJob(context.Background(), "abc")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodePlatform {
		t.Fatalf("expected platform error, got %v", err)
	}
	if appErr.Message != `Azure API error (Status 400): {"code":"InvalidPayload"}` {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"values":[]}`))
	})

	jobs, err := c.ListJobs(context.Background(), 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 || calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestDownload_WithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(KeyHeader) != "" {
			t.Error("signed download must not carry the subscription key")
		}
		_, _ = io.WriteString(w, `{"recognizedPhrases":[]}`)
	}))
	defer srv.Close()

	c, err := New(Config{Key: "secret", Region: "westeurope"}, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := c.Download(context.Background(), srv.URL+"/r/0.json?se=2030-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"recognizedPhrases":[]}` {
		t.Errorf("unexpected body %s", data)
	}
}

func TestListModels(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speechtotext/v3.2/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"values":[{"locale":"en-US","displayName":"English"},{"locale":"de-DE"}]}`))
	})

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 2 || models[0].Locale != "en-US" || models[0].DisplayName != "English" {
		t.Errorf("unexpected models %+v", models)
	}
}
