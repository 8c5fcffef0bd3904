package toolchain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/apkforge/apkforge/internal/event"
)

// fakeLookPath resolves tools from a fixed map and reports everything else
// as absent.
func fakeLookPath(paths map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if p, ok := paths[name]; ok {
			return p, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestCheckAllPresent(t *testing.T) {
	c := New(nil, nil)
	c.lookPath = fakeLookPath(map[string]string{
		"apktool":  "/usr/bin/apktool",
		"zipalign": "/usr/bin/zipalign",
	})

	avail := c.Check([]string{"apktool", "zipalign"})

	if missing := avail.Missing(); len(missing) != 0 {
		t.Errorf("Missing() = %v, want empty", missing)
	}
	if got := avail.Path("apktool"); got != "/usr/bin/apktool" {
		t.Errorf("Path(apktool) = %q, want /usr/bin/apktool", got)
	}

	tool, ok := avail.Lookup("zipalign")
	if !ok || !tool.Present {
		t.Errorf("Lookup(zipalign) = %+v, %v; want present tool", tool, ok)
	}
}

func TestCheckReportsAllMissingTools(t *testing.T) {
	c := New(nil, nil)
	c.lookPath = fakeLookPath(map[string]string{"adb": "/usr/bin/adb"})

	avail := c.Check([]string{"apktool", "zipalign", "adb", "keytool"})

	// The complete set, sorted, so the caller reports one aggregated message.
	want := []string{"apktool", "keytool", "zipalign"}
	if got := avail.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestCheckPublishesEvents(t *testing.T) {
	bus := event.NewBus()
	var located, missing []string
	bus.Subscribe("tool.located", func(e event.Event) {
		located = append(located, e.(event.ToolLocatedEvent).Tool)
	})
	bus.Subscribe("tool.missing", func(e event.Event) {
		missing = append(missing, e.(event.ToolMissingEvent).Tool)
	})

	c := New(bus, nil)
	c.lookPath = fakeLookPath(map[string]string{"adb": "/usr/bin/adb"})

	c.Check([]string{"adb", "apktool"})

	if !reflect.DeepEqual(located, []string{"adb"}) {
		t.Errorf("located events = %v, want [adb]", located)
	}
	if !reflect.DeepEqual(missing, []string{"apktool"}) {
		t.Errorf("missing events = %v, want [apktool]", missing)
	}
}

func TestCheckWarnsOnUnconventionalPath(t *testing.T) {
	bus := event.NewBus()
	var warned []event.ToolUnconventionalPathEvent
	bus.Subscribe("tool.unconventional", func(e event.Event) {
		warned = append(warned, e.(event.ToolUnconventionalPathEvent))
	})

	c := New(bus, nil)
	c.lookPath = fakeLookPath(map[string]string{
		"apktool": "/home/user/tools/apktool",
		"adb":     "/usr/bin/adb",
	})

	avail := c.Check([]string{"apktool", "adb"})

	if len(warned) != 1 {
		t.Fatalf("received %d unconventional-path events, want 1", len(warned))
	}
	if warned[0].Tool != "apktool" || warned[0].Path != "/home/user/tools/apktool" {
		t.Errorf("event = %+v, want apktool at /home/user/tools/apktool", warned[0])
	}

	// Informational only: the tool still counts as present.
	if missing := avail.Missing(); len(missing) != 0 {
		t.Errorf("Missing() = %v, want empty", missing)
	}
}

func TestPathFallsBackToBareName(t *testing.T) {
	var avail Availability
	avail.tools = map[string]Tool{}

	if got := avail.Path("zipalign"); got != "zipalign" {
		t.Errorf("Path(zipalign) = %q, want bare name fallback", got)
	}
}
