package window

import (
	"errors"
	"testing"

	"github.com/cpuguy83/appshell/internal/toolkit"
)

func TestGetOrCreateReturnsSameWindow(t *testing.T) {
	rt := toolkit.NewHeadless(toolkit.Options{ID: "com.example.app"})
	m := NewManager()

	first, err := m.GetOrCreate(rt)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	for i := range 5 {
		w, err := m.GetOrCreate(rt)
		if err != nil {
			t.Fatalf("GetOrCreate() call %d error = %v", i, err)
		}
		if w != first {
			t.Fatalf("GetOrCreate() call %d returned a different window", i)
		}
	}

	if got := rt.Created(); got != 1 {
		t.Errorf("windows created = %d, want 1", got)
	}
	if owner := first.Application(); owner != toolkit.Application(rt) {
		t.Error("window owner is not the requesting application")
	}
}

func TestGetOrCreateAfterDestroy(t *testing.T) {
	rt := toolkit.NewHeadless(toolkit.Options{ID: "com.example.app", IsService: true})
	m := NewManager()

	first, err := m.GetOrCreate(rt)
	if err != nil {
		t.Fatal(err)
	}
	first.(*toolkit.HeadlessWindow).Close()

	if w := m.Window(rt); w != nil {
		t.Fatal("destroyed window still tracked")
	}

	second, err := m.GetOrCreate(rt)
	if err != nil {
		t.Fatal(err)
	}
	if second == first {
		t.Error("GetOrCreate() returned a destroyed window")
	}
	if got := len(rt.Windows()); got != 1 {
		t.Errorf("live windows = %d, want 1", got)
	}
}

func TestGetOrCreateSeparateOwners(t *testing.T) {
	a := toolkit.NewHeadless(toolkit.Options{ID: "com.example.a"})
	b := toolkit.NewHeadless(toolkit.Options{ID: "com.example.b"})
	m := NewManager()

	wa, err := m.GetOrCreate(a)
	if err != nil {
		t.Fatal(err)
	}
	wb, err := m.GetOrCreate(b)
	if err != nil {
		t.Fatal(err)
	}
	if wa == wb {
		t.Error("different owners share a window")
	}
}

func TestGetOrCreateConstructionFailure(t *testing.T) {
	errNoAssets := errors.New("missing window template")
	rt := toolkit.NewHeadless(toolkit.Options{ID: "com.example.app"})
	rt.FailNewWindow = errNoAssets
	m := NewManager()

	w, err := m.GetOrCreate(rt)
	if !errors.Is(err, errNoAssets) {
		t.Fatalf("GetOrCreate() error = %v, want %v", err, errNoAssets)
	}
	if w != nil {
		t.Error("GetOrCreate() returned a window alongside an error")
	}
	if m.Window(rt) != nil {
		t.Error("failed construction left a window tracked")
	}

	rt.FailNewWindow = nil
	if _, err := m.GetOrCreate(rt); err != nil {
		t.Errorf("GetOrCreate() after recovery error = %v", err)
	}
}

func TestPresentIsIdempotent(t *testing.T) {
	rt := toolkit.NewHeadless(toolkit.Options{ID: "com.example.app"})
	m := NewManager()

	w, err := m.GetOrCreate(rt)
	if err != nil {
		t.Fatal(err)
	}

	m.Present(w)
	m.Present(w)

	hw := w.(*toolkit.HeadlessWindow)
	if !hw.Visible || !hw.Focused() {
		t.Errorf("window visible=%v focused=%v, want both", hw.Visible, hw.Focused())
	}
	if hw.Presents != 2 {
		t.Errorf("Presents = %d, want 2", hw.Presents)
	}
	if got := rt.Created(); got != 1 {
		t.Errorf("windows created = %d, want 1", got)
	}
	if rt.ActiveWindow() != w {
		t.Error("presented window is not active")
	}
}
