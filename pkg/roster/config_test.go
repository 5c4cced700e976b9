package roster

import (
	"errors"
	"testing"
)

func TestDefaultRosterConstraintConfig_IsValid(t *testing.T) {
	t.Parallel()

	if err := DefaultRosterConstraintConfig().Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestRosterConstraintConfig_Validate(t *testing.T) {
	t.Parallel()

	negOne := -1.0
	negDays := -1

	tests := []struct {
		name    string
		mutate  func(*RosterConstraintConfig)
		wantErr bool
	}{
		{
			name:    "negative coverage shortfall weight",
			mutate:  func(c *RosterConstraintConfig) { c.Soft.CoverageShortfall = -1 },
			wantErr: true,
		},
		{
			name:    "negative fairness penalty weight",
			mutate:  func(c *RosterConstraintConfig) { c.Soft.FairnessPenalty = -1 },
			wantErr: true,
		},
		{
			name:    "zero max consecutive days when set",
			mutate:  func(c *RosterConstraintConfig) { zero := 0; c.Hard.MaxConsecutiveDays = &zero },
			wantErr: true,
		},
		{
			name:    "negative max consecutive days when set",
			mutate:  func(c *RosterConstraintConfig) { c.Hard.MaxConsecutiveDays = &negDays },
			wantErr: true,
		},
		{
			name:    "negative min break hours",
			mutate:  func(c *RosterConstraintConfig) { c.Hard.MinBreakHours = &negOne },
			wantErr: true,
		},
		{
			name:    "negative rest window hours",
			mutate:  func(c *RosterConstraintConfig) { c.Hard.RestWindowHours = &negOne },
			wantErr: true,
		},
		{
			name:    "negative fairness target hours",
			mutate:  func(c *RosterConstraintConfig) { c.FairnessTargetHours = &negOne },
			wantErr: true,
		},
		{
			name:    "positive max consecutive days is fine",
			mutate:  func(c *RosterConstraintConfig) { three := 3; c.Hard.MaxConsecutiveDays = &three },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRosterConstraintConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected error to wrap ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestRosterConstraintConfig_ValidateJoinsMultipleProblems(t *testing.T) {
	t.Parallel()

	cfg := DefaultRosterConstraintConfig()
	cfg.Soft.CoverageShortfall = -1
	cfg.Soft.FairnessPenalty = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if !containsAll(msg, "coverage_shortfall", "fairness_penalty") {
		t.Errorf("expected joined error to mention both problems, got %q", msg)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !contains(s, sub) {
			return false
		}
	}
	return true
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
