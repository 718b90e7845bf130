package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/muurk/maskedit/internal/session"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		word    string
		kind    session.CommandKind
		sel     *session.Selection
		wantErr bool
	}{
		{word: "up", kind: session.KindIncrement},
		{word: "pgdn", kind: session.KindIncrement},
		{word: "digit+", kind: session.KindCycleDigit},
		{word: "del", kind: session.KindDelete},
		{word: "bksp", kind: session.KindBackspace},
		{word: "type:12", kind: session.KindPaste},
		{word: "key:7", kind: session.KindTypeChar},
		{word: "inc:-2.5", kind: session.KindIncrement},
		{word: "token:2", kind: session.KindSelectToken},
		{word: "caret:3", sel: &session.Selection{Start: 3}},
		{word: "sel:0,5", sel: &session.Selection{Start: 0, Length: 5}},
		{word: "key:12", wantErr: true},
		{word: "inc:x", wantErr: true},
		{word: "sel:1", wantErr: true},
		{word: "jump", wantErr: true},
		{word: "warp:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			steps, err := parseScript([]string{tt.word})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseScript(%q) succeeded, want error", tt.word)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScript(%q) error = %v", tt.word, err)
			}
			st := steps[0]
			if tt.sel != nil {
				if st.Select == nil || *st.Select != *tt.sel {
					t.Errorf("Select = %+v, want %+v", st.Select, tt.sel)
				}
				return
			}
			if st.Command == nil || st.Command.Kind != tt.kind {
				t.Errorf("Command = %+v, want kind %v", st.Command, tt.kind)
			}
		})
	}
}

func TestParseScriptIncrementAmounts(t *testing.T) {
	steps, err := parseScript([]string{"down", "pgup", "inc:0.25"})
	if err != nil {
		t.Fatalf("parseScript() error = %v", err)
	}
	want := []decimal.Decimal{decimal.NewFromInt(-1), decimal.NewFromInt(10), decimal.RequireFromString("0.25")}
	for i, st := range steps {
		if !st.Command.Amount.Equal(want[i]) {
			t.Errorf("step %d amount = %s, want %s", i, st.Command.Amount, want[i])
		}
	}
	if !steps[0].Command.Symbolic || steps[2].Command.Symbolic {
		t.Error("arrow keys should be symbolic and inc:N explicit")
	}
}

func TestRunScript(t *testing.T) {
	p, err := config.DefaultRegistry().GetProfile("time")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	eng, err := p.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	steps, err := parseScript([]string{"sel:0,5", "type:09:59", "caret:4", "inc:1"})
	if err != nil {
		t.Fatalf("parseScript() error = %v", err)
	}
	results, err := runScript(eng, steps)
	if err != nil {
		t.Fatalf("runScript() error = %v", err)
	}

	var texts []string
	for _, r := range results {
		texts = append(texts, r.Text)
	}
	want := []string{"00:00", "09:59", "09:59", "10:00"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	if last := results[3]; !last.Changed || len(last.Changes) != 2 {
		t.Errorf("last step = %+v, want a carried change", last)
	}
}

func TestRunScriptRejectsLetters(t *testing.T) {
	eng, err := session.New("00", "12", session.DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	steps, _ := parseScript([]string{"caret:0", "key:x"})
	results, err := runScript(eng, steps)
	if err != nil {
		t.Fatalf("runScript() error = %v", err)
	}
	if !results[1].Rejected || results[1].Text != "12" {
		t.Errorf("key:x = %+v, want rejected", results[1])
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("maskedit %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestApplyCommandText(t *testing.T) {
	out := execute(t, "apply", "--mask", "00/00", "--text", "12/99", "--format", "text", "caret:3", "inc:1")
	if out != "13/00\n" {
		t.Errorf("output = %q, want %q", out, "13/00\n")
	}
}

func TestParseCommandJSON(t *testing.T) {
	out := execute(t, "parse", "00:00", "12:30", "--format", "json")

	var infos []mask.Info
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	var texts []string
	for _, in := range infos {
		texts = append(texts, in.Text)
	}
	if diff := cmp.Diff([]string{"12", ":", "30"}, texts); diff != "" {
		t.Errorf("token texts mismatch (-want +got):\n%s", diff)
	}
	if !infos[1].Split {
		t.Error("':' should be a split token")
	}
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	if !strings.HasPrefix(out, "maskedit ") {
		t.Errorf("version output = %q", out)
	}
}
