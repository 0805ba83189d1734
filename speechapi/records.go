package speechapi

import (
	"time"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/transcript"
	"github.com/kbukum/speechkit/util"
)

type page[T any] struct {
	Values []T `json:"values"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

type jobRecord struct {
	Self               string         `json:"self"`
	ID                 string         `json:"id"`
	DisplayName        string         `json:"displayName"`
	Status             string         `json:"status"`
	CreatedDateTime    string         `json:"createdDateTime"`
	LastActionDateTime string         `json:"lastActionDateTime"`
	Locale             string         `json:"locale"`
	ContentURLs        []string       `json:"contentUrls"`
	Properties         *jobProperties `json:"properties"`
	Error              *apiError      `json:"error"`
}

type jobProperties struct {
	Duration       string    `json:"duration"`
	SucceededCount *int      `json:"succeededCount"`
	FailedCount    *int      `json:"failedCount"`
	Error          *apiError `json:"error"`
}

func (r jobRecord) toJob() *batch.Job {
	job := &batch.Job{
		ID:           r.ID,
		DisplayName:  r.DisplayName,
		Status:       batch.Status(r.Status),
		CreatedAt:    parseTime(r.CreatedDateTime),
		LastActionAt: parseTime(r.LastActionDateTime),
		Locale:       r.Locale,
		Files:        make([]string, 0, len(r.ContentURLs)),
		Error:        r.Error.text(),
	}
	if r.Self != "" {
		job.ID = util.LastPathSegment(r.Self)
	}
	if job.DisplayName == "" {
		job.DisplayName = "Unknown"
	}
	if job.Status == "" {
		job.Status = batch.StatusUnknown
	}
	for _, u := range r.ContentURLs {
		job.Files = append(job.Files, util.DisplayFileName(u))
	}
	if p := r.Properties; p != nil {
		job.Properties = &batch.Properties{
			SucceededCount: p.SucceededCount,
			FailedCount:    p.FailedCount,
			ErrorMessage:   p.Error.text(),
		}
		if ticks, ok := transcript.ParseISODuration(p.Duration); ok {
			job.Properties.DurationTicks = &ticks
		}
	}
	return job
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

type fileRecord struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Links struct {
		ContentURL string `json:"contentUrl"`
	} `json:"links"`
	Properties struct {
		Size int64 `json:"size"`
	} `json:"properties"`
}

func (f fileRecord) toEntry() batch.FileEntry {
	return batch.FileEntry{Kind: f.Kind, Name: f.Name, ContentURL: f.Links.ContentURL, Size: f.Properties.Size}
}

type submissionBody struct {
	ContentURLs []string             `json:"contentUrls"`
	Locale      string               `json:"locale"`
	DisplayName string               `json:"displayName"`
	Properties  submissionProperties `json:"properties"`
}

type submissionProperties struct {
	DiarizationEnabled         bool           `json:"diarizationEnabled"`
	Diarization                map[string]any `json:"diarization"`
	WordLevelTimestampsEnabled bool           `json:"wordLevelTimestampsEnabled"`
	PunctuationMode            string         `json:"punctuationMode"`
	ProfanityFilterMode        string         `json:"profanityFilterMode"`
}

func newSubmissionBody(sub batch.Submission) submissionBody {
	return submissionBody{
		ContentURLs: sub.ContentURLs,
		Locale:      sub.Locale,
		DisplayName: sub.DisplayName,
		Properties: submissionProperties{
			DiarizationEnabled:         true,
			Diarization:                sub.Speakers.Properties(),
			WordLevelTimestampsEnabled: true,
			PunctuationMode:            "DictatedAndAutomatic",
			ProfanityFilterMode:        "Masked",
		},
	}
}
