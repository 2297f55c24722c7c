package store

import (
	"encoding/json"
	"testing"
)

func TestBindingRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{
		ID:         "binding-1",
		Event:      BindingEventRep,
		PluginName: "say",
		ActionName: "announce",
		Config:     json.RawMessage(`{"voice":"daniel"}`),
		Enabled:    true,
	}

	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}

	retrieved, err := repo.GetByID("binding-1")
	if err != nil {
		t.Fatalf("failed to get binding: %v", err)
	}
	if retrieved.Event != BindingEventRep {
		t.Errorf("Event mismatch: got %q, want %q", retrieved.Event, BindingEventRep)
	}
	if retrieved.PluginName != "say" {
		t.Errorf("PluginName mismatch: got %q", retrieved.PluginName)
	}
	if string(retrieved.Config) != `{"voice":"daniel"}` {
		t.Errorf("Config mismatch: got %s", retrieved.Config)
	}
	if !retrieved.Enabled {
		t.Error("Enabled should be true")
	}
}

func TestBindingRepository_NilConfigDefaults(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{
		ID:         "binding-1",
		Event:      BindingEventComplete,
		PluginName: "sound",
		ActionName: "chime",
	}

	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}

	retrieved, err := repo.GetByID("binding-1")
	if err != nil {
		t.Fatalf("failed to get binding: %v", err)
	}
	if string(retrieved.Config) != "{}" {
		t.Errorf("nil config should default to {}, got %s", retrieved.Config)
	}
}

func TestBindingRepository_GetByEvent(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	bindings := []*Binding{
		{ID: "b1", Event: BindingEventRep, PluginName: "say", ActionName: "announce", Enabled: true},
		{ID: "b2", Event: BindingEventRep, PluginName: "sound", ActionName: "beep", Enabled: true},
		{ID: "b3", Event: BindingEventFeedback, PluginName: "say", ActionName: "coach", Enabled: true},
	}
	for _, b := range bindings {
		if err := repo.Create(b); err != nil {
			t.Fatalf("failed to create binding %q: %v", b.ID, err)
		}
	}

	reps, err := repo.GetByEvent(BindingEventRep)
	if err != nil {
		t.Fatalf("failed to get bindings by event: %v", err)
	}
	if len(reps) != 2 {
		t.Errorf("expected 2 rep bindings, got %d", len(reps))
	}

	none, err := repo.GetByEvent(BindingEventComplete)
	if err != nil {
		t.Fatalf("failed to get bindings by event: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no complete bindings, got %d", len(none))
	}
}

func TestBindingRepository_RejectsUnknownEvent(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	err := repo.Create(&Binding{
		ID:         "binding-1",
		Event:      "on_blink",
		PluginName: "say",
		ActionName: "announce",
	})
	if err == nil {
		t.Error("creating a binding with an unknown event should fail the CHECK constraint")
	}
}

func TestBindingRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{
		ID:         "binding-1",
		Event:      BindingEventFeedback,
		PluginName: "say",
		ActionName: "coach",
		Enabled:    true,
	}
	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}

	binding.Enabled = false
	binding.ActionName = "coach_quiet"
	if err := repo.Update(binding); err != nil {
		t.Fatalf("failed to update binding: %v", err)
	}

	retrieved, err := repo.GetByID("binding-1")
	if err != nil {
		t.Fatalf("failed to get binding: %v", err)
	}
	if retrieved.Enabled {
		t.Error("Enabled not updated")
	}
	if retrieved.ActionName != "coach_quiet" {
		t.Errorf("ActionName not updated: got %q", retrieved.ActionName)
	}
}

func TestBindingRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{
		ID:         "binding-1",
		Event:      BindingEventRep,
		PluginName: "sound",
		ActionName: "beep",
	}
	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}

	if err := repo.Delete("binding-1"); err != nil {
		t.Fatalf("failed to delete binding: %v", err)
	}
	if _, err := repo.GetByID("binding-1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := repo.Delete("binding-1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for double delete, got: %v", err)
	}
}
