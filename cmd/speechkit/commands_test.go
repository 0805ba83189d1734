package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/locale"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/speechapi"
)

type fakePlatform struct {
	mu      sync.Mutex
	jobs    map[string]batch.Job
	listErr error
	deleted []string
	models  []speechapi.Model
}

func (p *fakePlatform) SubmitJob(context.Context, batch.Submission) (*batch.Job, error) {
	return nil, errors.New("not supported")
}

func (p *fakePlatform) GetJob(_ context.Context, id string) (*batch.Job, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	job, ok := p.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	return &job, nil
}

func (p *fakePlatform) ListJobs(context.Context, int, int) ([]batch.Job, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listErr != nil {
		return nil, p.listErr
	}
	out := []batch.Job{}
	for _, j := range p.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (p *fakePlatform) DeleteJob(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *fakePlatform) ListJobFiles(context.Context, string) ([]batch.FileEntry, error) {
	return nil, nil
}

func (p *fakePlatform) Download(context.Context, string) ([]byte, error) {
	return nil, errors.New("not supported")
}

func (p *fakePlatform) ListModels(context.Context) ([]speechapi.Model, error) {
	return p.models, nil
}

func usePlatform(t *testing.T, p platform) {
	t.Helper()
	orig := dialPlatform
	dialPlatform = func(*AppConfig, *logger.Logger) (platform, error) { return p, nil }
	t.Cleanup(func() { dialPlatform = orig })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJobsList(t *testing.T) {
	usePlatform(t, &fakePlatform{jobs: map[string]batch.Job{
		"job-1": {ID: "job-1", DisplayName: "Standup", Status: batch.StatusSucceeded, Files: []string{"standup.wav"}},
	}})

	out, err := run(t, "jobs", "list")
	require.NoError(t, err)

	var res batch.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Standup", res.Jobs[0].DisplayName)
	assert.Equal(t, []string{"standup.wav"}, res.Jobs[0].Files)
	assert.Nil(t, res.Degraded)
}

func TestJobsList_Degraded(t *testing.T) {
	usePlatform(t, &fakePlatform{listErr: errors.New("connection refused")})

	out, err := run(t, "jobs", "list")
	var deg *DegradedError
	require.ErrorAs(t, err, &deg)
	assert.Contains(t, deg.Reason, "connection refused")
	assert.Equal(t, ExitDegraded, exitCode(err))

	var res batch.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Empty(t, res.Jobs)
}

func TestJobsList_NegativePaging(t *testing.T) {
	usePlatform(t, &fakePlatform{})
	_, err := run(t, "jobs", "list", "--skip", "-1")
	assert.Error(t, err)
}

func TestJobsStatus_YAML(t *testing.T) {
	usePlatform(t, &fakePlatform{jobs: map[string]batch.Job{
		"job-7": {ID: "job-7", Status: batch.StatusRunning, Files: []string{"a.wav"}},
	}})

	out, err := run(t, "jobs", "status", "job-7", "--output", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "job-7", got["id"])
	assert.Equal(t, "Running", got["status"])
}

func TestJobsStatus_Missing(t *testing.T) {
	usePlatform(t, &fakePlatform{jobs: map[string]batch.Job{}})

	_, err := run(t, "jobs", "status", "nope")
	assert.Equal(t, ExitDegraded, exitCode(err))
}

func TestJobsDelete(t *testing.T) {
	p := &fakePlatform{}
	usePlatform(t, p)

	out, err := run(t, "jobs", "delete", "job-3")
	require.NoError(t, err)
	assert.Equal(t, []string{"job-3"}, p.deleted)
	assert.Contains(t, out, "Job job-3 deleted successfully")
}

func TestJobsDelete_RequiresID(t *testing.T) {
	usePlatform(t, &fakePlatform{})
	_, err := run(t, "jobs", "delete")
	assert.Error(t, err)
}

func TestLocales(t *testing.T) {
	usePlatform(t, &fakePlatform{models: []speechapi.Model{
		{Locale: "fr-FR", DisplayName: "French (France)"},
		{Locale: "de-DE", DisplayName: "German (Germany)"},
	}})

	out, err := run(t, "locales", "--codes")
	require.NoError(t, err)

	var codes []string
	require.NoError(t, json.Unmarshal([]byte(out), &codes))
	assert.ElementsMatch(t, []string{"de-DE", "fr-FR"}, codes)
}

func TestLocales_Offline(t *testing.T) {
	out, err := run(t, "locales", "--offline")
	require.NoError(t, err)

	var got []locale.Info
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, locale.Fallback(), got)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "version")
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := run(t, "version", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "xml"`)
}

func TestRootCommandTree(t *testing.T) {
	cmd := newRootCommand()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "jobs", "locales", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}
