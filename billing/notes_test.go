package billing

import (
	"strings"
	"testing"
)

func TestBuildNotes_CompletionLadder(t *testing.T) {
	tests := []struct {
		name     string
		payable  int64
		wantDone string
		wantRule string
	}{
		{"under_90", 850, "85.00%", "less than 90%"},
		{"between_90_and_100", 950, "95.00%", ""},
		{"exactly_100", 1000, "100.00%", ""},
		{"up_to_105", 1030, "103.00%", "less than or equal to 5%"},
		{"exactly_105", 1050, "105.00%", "less than or equal to 5%"},
		{"over_105", 1100, "110.00%", "more than 5%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := BuildNotes(tt.payable, 1000, 0, NoteOptions{})

			if !strings.Contains(notes[0], tt.wantDone) {
				t.Errorf("first note %q does not contain %q", notes[0], tt.wantDone)
			}
			if tt.wantRule == "" {
				if len(notes) != 6 {
					t.Errorf("expected no deviation note, got %q", notes)
				}
				if !strings.HasPrefix(notes[1], "2. Quality Control") {
					t.Errorf("note 2 = %q, want the QC note", notes[1])
				}
				return
			}
			if !strings.HasPrefix(notes[1], "2. ") || !strings.Contains(notes[1], tt.wantRule) {
				t.Errorf("note 2 = %q, want rule containing %q", notes[1], tt.wantRule)
			}
		})
	}
}

func TestBuildNotes_ApprovalAuthority(t *testing.T) {
	notes := BuildNotes(1100, 1000, 0, NoteOptions{})
	if !strings.Contains(notes[1], DefaultApprovalAuthority) {
		t.Errorf("expected default authority in %q", notes[1])
	}

	notes = BuildNotes(1100, 1000, 0, NoteOptions{ApprovalAuthority: "the Chief Engineer"})
	if !strings.Contains(notes[1], "the Chief Engineer") {
		t.Errorf("expected configured authority in %q", notes[1])
	}
}

func TestBuildNotes_ExtraItems(t *testing.T) {
	tests := []struct {
		name  string
		extra int64
		want  string
	}{
		{"under_5", 40, "which is 4.00% of the Work Order Amount; under 5%"},
		{"over_5", 60, "which is 6.00% of the Work Order Amount; exceed 5%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := BuildNotes(950, 1000, tt.extra, NoteOptions{})
			if len(notes) != 7 {
				t.Fatalf("got %d lines, want 7: %q", len(notes), notes)
			}
			if !strings.HasPrefix(notes[2], "3. The amount of Extra items is Rs. ") {
				t.Errorf("note 3 = %q", notes[2])
			}
			if !strings.Contains(notes[2], tt.want) {
				t.Errorf("note 3 = %q, want it to contain %q", notes[2], tt.want)
			}
		})
	}
}

func TestBuildNotes_ZeroWorkOrderAmount(t *testing.T) {
	notes := BuildNotes(500, 0, 0, NoteOptions{})
	if !strings.Contains(notes[0], "0.00%") {
		t.Errorf("first note = %q, want 0.00%%", notes[0])
	}
}

func TestBuildNotes_NumberingAndSignature(t *testing.T) {
	notes := BuildNotes(850, 1000, 80, NoteOptions{
		Signatory: Signatory{Name: "R. Sharma", Designation: "Divisional Accountant"},
	})

	numbered := notes[:len(notes)-3]
	for i, n := range numbered {
		prefix := string(rune('1'+i)) + ". "
		if !strings.HasPrefix(n, prefix) {
			t.Errorf("note %d = %q, want prefix %q", i, n, prefix)
		}
	}
	if len(numbered) != 5 {
		t.Errorf("got %d numbered notes, want 5", len(numbered))
	}
	if !strings.HasPrefix(numbered[len(numbered)-1], "5. Please peruse") {
		t.Errorf("last note = %q", numbered[len(numbered)-1])
	}

	tail := notes[len(notes)-3:]
	if tail[0] != "" || tail[1] != "R. Sharma" || tail[2] != "Divisional Accountant" {
		t.Errorf("signature block = %q", tail)
	}
}

func TestBuildNotes_DefaultSignatory(t *testing.T) {
	notes := BuildNotes(950, 1000, 0, NoteOptions{})
	n := len(notes)
	if notes[n-2] != DefaultSignatoryName || notes[n-1] != DefaultSignatoryDesignation {
		t.Errorf("signature = %q, %q", notes[n-2], notes[n-1])
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		part, whole, want float64
	}{
		{50, 200, 25},
		{1050, 1000, 105},
		{1, 0, 0},
		{1, -10, 0},
	}
	for _, tt := range tests {
		if got := PercentOf(tt.part, tt.whole); !floatClose(got, tt.want) {
			t.Errorf("PercentOf(%v, %v) = %v, want %v", tt.part, tt.whole, got, tt.want)
		}
	}
}
