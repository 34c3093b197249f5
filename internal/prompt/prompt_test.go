package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/teamsgen/teamsgen/internal/errors"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewWithIO(strings.NewReader(input), &out), &out
}

func TestInput_Answer(t *testing.T) {
	p, _ := newTestPrompter("my-app\n")

	got, err := p.Input("Solution name?", "teams-app", nil)
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if got != "my-app" {
		t.Errorf("Input() = %q, want %q", got, "my-app")
	}
}

func TestInput_EmptyUsesDefault(t *testing.T) {
	p, _ := newTestPrompter("\n")

	got, err := p.Input("Solution name?", "teams-app", nil)
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if got != "teams-app" {
		t.Errorf("Input() = %q, want default %q", got, "teams-app")
	}
}

func TestInput_ValidationLoops(t *testing.T) {
	// First answer fails validation, second passes.
	p, out := newTestPrompter("\nmy-app\n")

	nonEmpty := func(s string) error {
		if s == "" {
			return errors.ErrMissingName
		}
		return nil
	}

	got, err := p.Input("Solution name?", "", nonEmpty)
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if got != "my-app" {
		t.Errorf("Input() = %q, want %q", got, "my-app")
	}
	if !strings.Contains(out.String(), "name is required") {
		t.Errorf("validation error should be surfaced inline, got %q", out.String())
	}
}

func TestInput_EOFCancels(t *testing.T) {
	p, _ := newTestPrompter("")

	_, err := p.Input("Solution name?", "", nil)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("error = %v, want ErrCancelled", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{name: "yes", input: "y\n", def: false, want: true},
		{name: "yes long", input: "yes\n", def: false, want: true},
		{name: "no", input: "n\n", def: true, want: false},
		{name: "empty takes default true", input: "\n", def: true, want: true},
		{name: "empty takes default false", input: "\n", def: false, want: false},
		{name: "case insensitive", input: "Y\n", def: false, want: true},
		{name: "garbage then yes", input: "maybe\ny\n", def: false, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.Confirm("Continue?", tt.def)
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelect_SingleAutoSelects(t *testing.T) {
	p, out := newTestPrompter("")

	got, err := p.Select("Version?", []Choice{{Value: "1.5", Name: "v1.5"}})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != "1.5" {
		t.Errorf("Select() = %q, want %q", got, "1.5")
	}
	if out.Len() != 0 {
		t.Error("single choice should not prompt")
	}
}

func TestSelect_Numbered(t *testing.T) {
	choices := []Choice{
		{Value: "1.4", Name: "v1.4"},
		{Value: "1.5", Name: "v1.5"},
		{Value: "devPreview", Name: "dev preview"},
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "pick second", input: "2\n", want: "1.5"},
		{name: "empty defaults to first", input: "\n", want: "1.4"},
		{name: "out of range", input: "7\n", wantErr: ErrInvalidSelection},
		{name: "not a number", input: "x\n", wantErr: ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.Select("Version?", choices)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelect_Empty(t *testing.T) {
	p, _ := newTestPrompter("")
	if _, err := p.Select("Version?", nil); !errors.Is(err, ErrNoChoices) {
		t.Errorf("error = %v, want ErrNoChoices", err)
	}
}

func TestMultiSelect(t *testing.T) {
	choices := []Choice{
		{Value: "tab", Name: "A tab"},
		{Value: "bot", Name: "A bot"},
		{Value: "connector", Name: "A connector"},
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "two picks", input: "1,3\n", want: []string{"tab", "connector"}},
		{name: "empty selects none", input: "\n", want: nil},
		{name: "duplicates collapse", input: "2,2\n", want: []string{"bot"}},
		{name: "whitespace tolerated", input: " 1 , 2 \n", want: []string{"tab", "bot"}},
		{name: "invalid then valid", input: "9\n1\n", want: []string{"tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.MultiSelect("Parts?", choices)
			if err != nil {
				t.Fatalf("MultiSelect() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("MultiSelect() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MultiSelect()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
