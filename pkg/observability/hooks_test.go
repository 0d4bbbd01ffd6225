package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEngineHooks struct {
	NoopEngineHooks
	arranges int
	places   int
	snaps    int
	pushes   int
}

func (r *recordingEngineHooks) OnArrangeStart(context.Context, int) { r.arranges++ }
func (r *recordingEngineHooks) OnPlace(context.Context, int, int, time.Duration, error) {
	r.places++
}
func (r *recordingEngineHooks) OnSnap(context.Context, string, int) { r.snaps++ }
func (r *recordingEngineHooks) OnPush(context.Context, string, int) { r.pushes++ }

type recordingStoreHooks struct {
	NoopStoreHooks
	gets int
}

func (r *recordingStoreHooks) OnGet(context.Context, string, string, error) { r.gets++ }

func TestSetAndGetHooks(t *testing.T) {
	t.Cleanup(Reset)

	eh := &recordingEngineHooks{}
	sh := &recordingStoreHooks{}
	SetEngineHooks(eh)
	SetStoreHooks(sh)

	ctx := context.Background()
	Engine().OnArrangeStart(ctx, 3)
	Engine().OnSnap(ctx, "chart", 2)
	Engine().OnPush(ctx, "chart", 1)
	Store().OnGet(ctx, "memory", "id", nil)

	if eh.arranges != 1 || eh.snaps != 1 || eh.pushes != 1 {
		t.Errorf("engine hook counts = %+v", eh)
	}
	if sh.gets != 1 {
		t.Errorf("store hook gets = %d, want 1", sh.gets)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	eh := &recordingEngineHooks{}
	SetEngineHooks(eh)
	SetEngineHooks(nil)

	Engine().OnArrangeStart(context.Background(), 1)
	if eh.arranges != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}

func TestReset(t *testing.T) {
	SetEngineHooks(&recordingEngineHooks{})
	SetStoreHooks(&recordingStoreHooks{})
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset should restore no-op engine hooks")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset should restore no-op store hooks")
	}
}
