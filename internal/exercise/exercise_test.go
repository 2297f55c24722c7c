package exercise

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"typical", Config{TargetReps: 12, VisibilityThreshold: 0.5, ConfirmFrames: 4}, false},
		{"plank forearm", Config{TargetHoldSeconds: 60, PlankVariant: VariantForearm}, false},
		{"plank straight arm", Config{PlankVariant: VariantStraightArm}, false},
		{"negative reps", Config{TargetReps: -1}, true},
		{"negative hold", Config{TargetHoldSeconds: -5}, true},
		{"visibility above one", Config{VisibilityThreshold: 1.5}, true},
		{"negative visibility", Config{VisibilityThreshold: -0.1}, true},
		{"negative confirm frames", Config{ConfirmFrames: -2}, true},
		{"bad plank variant", Config{PlankVariant: "elbows"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_AllNames(t *testing.T) {
	for _, name := range Names() {
		ex, err := New(name, Config{})
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if ex.Name() != name {
			t.Errorf("Name() = %q, want %q", ex.Name(), name)
		}
	}
}

func TestNew_UnknownExercise(t *testing.T) {
	_, err := New("handstand", Config{})
	if !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("error = %v, want ErrUnknownExercise", err)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New("squat", Config{VisibilityThreshold: 2})
	if err == nil {
		t.Error("invalid config accepted")
	}
}

func TestKinds(t *testing.T) {
	for _, name := range Names() {
		ex, err := New(name, Config{})
		if err != nil {
			t.Fatal(err)
		}
		want := KindReps
		if name == "plank" {
			want = KindHold
		}
		if ex.Kind() != want {
			t.Errorf("%s Kind() = %q, want %q", name, ex.Kind(), want)
		}
	}
}
