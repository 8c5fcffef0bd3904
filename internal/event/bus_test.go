package event

import (
	"sync"
	"testing"
)

func TestBusSubscribePublish(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe("phase.started", func(e Event) {
		got = append(got, e)
	})

	bus.Publish(NewPhaseStartedEvent("rebuilding"))
	bus.Publish(NewPhaseCompletedEvent("rebuilding", "/tmp/unsigned.apk"))

	if len(got) != 1 {
		t.Fatalf("handler received %d events, want 1", len(got))
	}
	ev, ok := got[0].(PhaseStartedEvent)
	if !ok {
		t.Fatalf("received %T, want PhaseStartedEvent", got[0])
	}
	if ev.Phase != "rebuilding" {
		t.Errorf("Phase = %q, want %q", ev.Phase, "rebuilding")
	}
}

func TestBusSubscribeAll(t *testing.T) {
	bus := NewBus()

	var count int
	bus.SubscribeAll(func(Event) { count++ })

	bus.Publish(NewToolMissingEvent("apktool"))
	bus.Publish(NewToolLocatedEvent("adb", "/usr/bin/adb"))
	bus.Publish(NewWorkAreaCreatedEvent("/tmp/apkforge-x"))

	if count != 3 {
		t.Errorf("wildcard handler received %d events, want 3", count)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	var count int
	id := bus.Subscribe("pipeline.failed", func(Event) { count++ })

	bus.Publish(NewPipelineFailedEvent("signing", "boom"))
	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe returned false for a live subscription")
	}
	bus.Publish(NewPipelineFailedEvent("signing", "boom"))

	if count != 1 {
		t.Errorf("handler received %d events after unsubscribe, want 1", count)
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe returned true for an already-removed subscription")
	}
}

func TestBusHandlerPanicDoesNotBlockDelivery(t *testing.T) {
	bus := NewBus()

	var delivered bool
	bus.SubscribeAll(func(Event) { panic("misbehaving sink") })
	bus.SubscribeAll(func(Event) { delivered = true })

	bus.Publish(NewPhaseFailedEvent("aligning", "boom"))

	if !delivered {
		t.Error("second handler was not invoked after first handler panicked")
	}
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var count int
	bus.SubscribeAll(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewCommandExecutedEvent([]string{"adb", "devices"}, true, false, 0))
		}()
	}
	wg.Wait()

	if count != 10 {
		t.Errorf("handler received %d events, want 10", count)
	}
}

func TestEventTypes(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewPipelineStartedEvent("in", "out.apk", false), "pipeline.started"},
		{NewPipelineCompletedEvent("out.apk", 0), "pipeline.completed"},
		{NewPipelineFailedEvent("signing", "r"), "pipeline.failed"},
		{NewPhaseStartedEvent("aligning"), "phase.started"},
		{NewPhaseCompletedEvent("aligning", "a.apk"), "phase.completed"},
		{NewPhaseFailedEvent("aligning", "r"), "phase.failed"},
		{NewToolLocatedEvent("adb", "/usr/bin/adb"), "tool.located"},
		{NewToolMissingEvent("adb"), "tool.missing"},
		{NewToolUnconventionalPathEvent("adb", "/opt/adb"), "tool.unconventional"},
		{NewCommandExecutedEvent(nil, true, false, 0), "command.executed"},
		{NewKeystoreResolvedEvent("ks"), "keystore.resolved"},
		{NewKeystoreGeneratedEvent("ks"), "keystore.generated"},
		{NewDeviceInstallStartedEvent("A"), "device.install.started"},
		{NewDeviceInstallFinishedEvent("A", true, ""), "device.install.finished"},
		{NewWorkAreaCreatedEvent("/tmp/w"), "workarea.created"},
		{NewWorkAreaReleasedEvent("/tmp/w", true), "workarea.released"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ev.EventType(); got != tt.want {
				t.Errorf("EventType() = %q, want %q", got, tt.want)
			}
			if tt.ev.Timestamp().IsZero() {
				t.Error("Timestamp() is zero")
			}
		})
	}
}
