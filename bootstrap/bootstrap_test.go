package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/config"
	"github.com/kbukum/speechkit/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() component.Description {
	return component.Description{Name: "Object storage", Type: "storage", Details: "azure audio-files"}
}

func (d *describedComponent) Routes() []component.Route {
	return []component.Route{{Method: "GET", Path: "/api/locales"}}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "speechkit", Version: "1.0.0", Environment: "development"}}
	opts = append([]Option{WithLogger(logger.Nop()), WithSummaryOutput(io.Discard)}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app
}

func healthy(name string) *mockComponent {
	return &mockComponent{name: name, health: component.Health{Name: name, Status: component.StatusHealthy}}
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "speechkit" || app.Version != "1.0.0" {
		t.Errorf("name/version = %s/%s", app.Name, app.Version)
	}
	if app.Components == nil || app.Summary == nil {
		t.Fatal("registry and summary must be initialized")
	}
	if app.gracefulTimeout != defaultGracefulTimeout {
		t.Errorf("graceful timeout = %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Environment: "development"}}
	if _, err := NewApp(cfg, WithLogger(logger.Nop())); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(3*time.Second))
	if app.gracefulTimeout != 3*time.Second {
		t.Errorf("graceful timeout = %v", app.gracefulTimeout)
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app := newTestApp(t)
	if err := app.RegisterComponent(healthy("redis")); err != nil {
		t.Fatal(err)
	}
	if err := app.RegisterComponent(healthy("redis")); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  component.HealthStatus
		wantErr bool
	}{
		{"healthy", component.StatusHealthy, false},
		{"degraded", component.StatusDegraded, false},
		{"unhealthy", component.StatusUnhealthy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			_ = app.RegisterComponent(&mockComponent{name: "c", health: component.Health{Name: "c", Status: tt.status, Message: "m"}})
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadyCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("storage")
	_ = app.RegisterComponent(comp)

	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start"); return nil })
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		order = append(order, "configure:"+a.Cfg.Name)
		return nil
	})
	app.OnReady(func(context.Context) error { order = append(order, "ready"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "stop"); return nil })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if !comp.started {
			t.Error("component not started before task")
		}
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask() error = %v", err)
	}
	want := "start,configure:speechkit,ready,task,stop"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
	if !comp.stopped {
		t.Error("component not stopped")
	}
}

func TestRunTaskErrors(t *testing.T) {
	boom := fmt.Errorf("boom")

	t.Run("task error wins over stop error", func(t *testing.T) {
		app := newTestApp(t)
		_ = app.RegisterComponent(&mockComponent{name: "c", stopErr: fmt.Errorf("stop")})
		if err := app.RunTask(context.Background(), func(context.Context) error { return boom }); err != boom {
			t.Errorf("err = %v, want boom", err)
		}
	})

	t.Run("stop error surfaces", func(t *testing.T) {
		app := newTestApp(t)
		_ = app.RegisterComponent(&mockComponent{name: "c", stopErr: fmt.Errorf("stop")})
		if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err == nil {
			t.Error("expected stop error")
		}
	})

	t.Run("component start failure skips task", func(t *testing.T) {
		app := newTestApp(t)
		_ = app.RegisterComponent(&mockComponent{name: "c", startErr: boom})
		ran := false
		err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
		if err == nil || ran {
			t.Errorf("err = %v, ran = %v", err, ran)
		}
	})

	t.Run("configure failure", func(t *testing.T) {
		app := newTestApp(t)
		store := healthy("storage")
		_ = app.RegisterComponent(store)
		app.OnConfigure(func(context.Context, *App[*testConfig]) error { return boom })
		if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err == nil {
			t.Error("expected configure error")
		}
		if !store.stopped {
			t.Error("started component not stopped after configure failure")
		}
	})
}

func TestAttachDuringConfigure(t *testing.T) {
	app := newTestApp(t)
	store := healthy("storage")
	srv := healthy("http-server")
	_ = app.RegisterComponent(store)

	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if !store.started {
			t.Error("storage not started before configure")
		}
		return a.Attach(ctx, srv)
	})

	err := app.RunTask(context.Background(), func(context.Context) error {
		if !srv.started {
			t.Error("attached component not started")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask() error = %v", err)
	}
	if !srv.stopped || !store.stopped {
		t.Errorf("stopped: server=%v storage=%v", srv.stopped, store.stopped)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("server")
	_ = app.RegisterComponent(comp)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !comp.stopped {
		t.Error("component not stopped")
	}
}

func TestSummaryDisplay(t *testing.T) {
	reg := component.NewRegistry(logger.Nop())
	_ = reg.Register(&describedComponent{mockComponent{name: "storage", health: component.Health{Name: "storage", Status: component.StatusHealthy}}})
	_ = reg.Register(&mockComponent{name: "redis", health: component.Health{Name: "redis", Status: component.StatusDegraded, Message: "disabled"}})

	var buf bytes.Buffer
	s := NewSummary("speechkit", "1.2.3")
	s.out = &buf
	s.SetStartupDuration(1500 * time.Millisecond)
	s.Display(context.Background(), reg)

	out := buf.String()
	for _, want := range []string{
		"speechkit v1.2.3 started in 1.50s",
		"Object storage: azure audio-files",
		"redis [disabled]",
		"/api/locales",
		"(1/2 healthy)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
