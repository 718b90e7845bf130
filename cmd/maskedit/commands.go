package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/muurk/maskedit/internal/session"
	"github.com/muurk/maskedit/internal/tui"
	"github.com/muurk/maskedit/internal/ui"
)

// Output formats of parse and apply
var (
	parseFormat string
	applyFormat string
)

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(editCmd)
}

// writeStructured prints v as JSON or YAML. It reports false for other
// formats.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

// parseCmd shows the tokens of a mask
var parseCmd = &cobra.Command{
	Use:   "parse MASK [TEXT]",
	Short: "Split a mask into tokens",
	Long: `Parse a mask and show the tokens it produces.

Without TEXT the display text is the mask template, with every wildcard
position holding the prompt character.`,
	Example: `  # Tokens of a clock mask
  maskedit parse 00:00 12:30

  # Decimal amount with group separators, as JSON
  maskedit parse '$000,000.00' --decimal . --group , --format json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runParse,
}

var (
	parseSplitChars string
	parseDecimal    string
	parseGroup      string
	parsePrompt     string
)

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "table", "Output format (table, json, yaml)")
	parseCmd.Flags().StringVar(&parseSplitChars, "split-chars", string(mask.DefaultSplitChars), "Separator characters")
	parseCmd.Flags().StringVar(&parseDecimal, "decimal", "", "Decimal separator kept inside digit runs")
	parseCmd.Flags().StringVar(&parseGroup, "group", "", "Group separator kept inside digit runs")
	parseCmd.Flags().StringVar(&parsePrompt, "prompt", string(session.DefaultPromptChar), "Prompt character for the template")
}

func runParse(cmd *cobra.Command, args []string) error {
	p := &mask.Parser{SplitChars: []rune(parseSplitChars)}
	if parseDecimal != "" || parseGroup != "" {
		nf := mask.NumberFormat{}
		if r := []rune(parseDecimal); len(r) == 1 {
			nf.Decimal = r[0]
		}
		if r := []rune(parseGroup); len(r) == 1 {
			nf.Group = r[0]
		}
		p.NumberFormat = &nf
	}
	prompt := []rune(parsePrompt)
	if len(prompt) != 1 {
		return fmt.Errorf("--prompt must be a single character")
	}

	text := ""
	if len(args) == 2 {
		text = args[1]
	} else {
		t, err := p.Template(args[0], prompt[0])
		if err != nil {
			return err
		}
		text = t
	}

	tokens, err := p.Parse(args[0], text, nil)
	if err != nil {
		return err
	}

	if ok, err := writeStructured(cmd.OutOrStdout(), parseFormat, mask.Infos(tokens)); ok {
		return err
	}
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Parse", "maskedit parse", map[string]string{
		"Mask":   args[0],
		"Text":   text,
		"Tokens": strconv.Itoa(len(tokens)),
	})
	printer.Newline()
	printer.PrintField(ui.Field{Text: text, Tokens: tokens, PromptChar: prompt[0]})
	return nil
}

// applyCmd replays a key script against a field
var applyCmd = &cobra.Command{
	Use:   "apply [KEY...]",
	Short: "Replay keys against a field",
	Long: `Open a field from a profile or a raw mask and replay a key script.

Keys:
  type:TEXT       overlay TEXT at the selection
  key:C           type the single character C
  up, down        small increment of the token under the caret
  pgup, pgdn      big increment
  inc:N           add N (may be negative or fractional)
  digit+, digit-  cycle the character under the caret
  del, bksp       clear forwards or backwards
  token:N         select token N
  caret:N         move the caret
  sel:S,L         select L characters starting at S`,
	Example: `  # Type a time and step the minutes
  maskedit apply --profile time type:0959 token:2 up

  # Raw mask with initial text, JSON report
  maskedit apply --mask 00/00 --text 12/99 caret:3 inc:1 --format json`,
	RunE: runApply,
}

var (
	applyProfile string
	applyMask    string
	applyText    string
)

func init() {
	applyCmd.Flags().StringVar(&applyProfile, "profile", "", "Profile to open")
	applyCmd.Flags().StringVar(&applyMask, "mask", "", "Raw mask to open (instead of --profile)")
	applyCmd.Flags().StringVar(&applyText, "text", "", "Initial text (default: profile text or template)")
	applyCmd.Flags().StringVar(&applyFormat, "format", "detailed", "Output format (detailed, text, json, yaml)")
	applyCmd.MarkFlagsMutuallyExclusive("profile", "mask")
}

// applyReport is the structured result of apply
type applyReport struct {
	Mask      string            `json:"mask" yaml:"mask"`
	Text      string            `json:"text" yaml:"text"`
	Selection session.Selection `json:"selection" yaml:"selection"`
	Steps     []stepResult      `json:"steps" yaml:"steps"`
}

func openEngine() (*session.Engine, error) {
	if applyMask != "" {
		return session.New(applyMask, applyText, session.DefaultConfig())
	}

	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	name := applyProfile
	if name == "" {
		name = reg.Preferences.DefaultProfile
	}
	p, err := reg.GetProfile(name)
	if err != nil {
		return nil, err
	}
	eng, err := p.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	if applyText != "" {
		if err := eng.SetMask(eng.Mask(), applyText, false); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	steps, err := parseScript(args)
	if err != nil {
		return err
	}
	eng, err := openEngine()
	if err != nil {
		return err
	}

	results, runErr := runScript(eng, steps)
	report := applyReport{Mask: eng.Mask(), Text: eng.Text(), Selection: eng.Selection(), Steps: results}

	out := cmd.OutOrStdout()
	if ok, err := writeStructured(out, applyFormat, report); ok {
		if err != nil {
			return err
		}
		return runErr
	}
	if applyFormat == "text" {
		fmt.Fprintln(out, eng.Text())
		return runErr
	}

	printer := ui.NewPrinter(out)
	if runErr != nil {
		printer.PrintError("Key script failed", runErr, []string{
			"Check the key names with 'maskedit apply --help'",
			"Use 'maskedit parse' to see the token numbers of the mask",
		})
		return runErr
	}

	var changed []string
	for _, r := range results {
		for _, c := range r.Changes {
			changed = append(changed, fmt.Sprintf("#%d %s→%s", c.Seq, c.Old, c.New))
		}
	}
	details := map[string]string{
		"Mask":  eng.Mask(),
		"Text":  eng.Text(),
		"Steps": strconv.Itoa(len(results)),
	}
	if len(changed) > 0 {
		details["Changes"] = strings.Join(changed, ", ")
	}
	printer.PrintSuccess("Keys applied", details)
	return nil
}

// editCmd launches the interactive editor
var editCmd = &cobra.Command{
	Use:   "edit [PROFILE]",
	Short: "Launch the interactive field editor",
	Long: `Launch a full-screen editor for a profile's field.

Without PROFILE the profile list is shown first.`,
	Example: `  # Pick a profile from the list
  maskedit edit

  # Edit the date profile directly
  maskedit edit date`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	profile := ""
	if len(args) == 1 {
		profile = args[0]
		if _, err := reg.GetProfile(profile); err != nil {
			return err
		}
	}
	if !ui.IsTerminal() {
		return fmt.Errorf("the editor needs a terminal; use 'maskedit apply' for scripted edits")
	}
	return tui.Run(reg, profile)
}

// profilesCmd groups the profile commands
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage field profiles",
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd, profilesShowCmd, profilesInitCmd)
	profilesInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing profiles file without asking")
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		for _, name := range reg.ProfileNames() {
			p, err := reg.GetProfile(name)
			if err != nil {
				return err
			}
			marker := " "
			if name == reg.Preferences.DefaultProfile {
				marker = "*"
			}
			cmd.Printf("%s %-10s %-18s %s\n", marker, name, p.Mask, p.Description)
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show PROFILE",
	Short: "Print a profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		p, err := reg.GetProfile(args[0])
		if err != nil {
			return err
		}
		_, err = writeStructured(cmd.OutOrStdout(), "yaml", map[string]*config.Profile{args[0]: p})
		return err
	},
}

var initForce bool

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var profilesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in profiles to the profiles file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			path = p
		}

		if fileExists(path) && !initForce {
			printer := ui.NewPrinter(cmd.OutOrStdout())
			ok := printer.Confirm("Profiles file exists",
				[]string{path + " will be replaced", "Custom profiles in it will be lost"},
				"Overwrite?", cmd.InOrStdin())
			if !ok {
				return nil
			}
		}

		if configPath == "" {
			if err := config.CreateDefaultConfig(); err != nil {
				return err
			}
		} else if err := config.DefaultRegistry().SaveTo(path); err != nil {
			return err
		}
		cmd.Printf("Wrote %d profiles to %s\n", len(config.BuiltinProfiles()), path)
		return nil
	},
}
