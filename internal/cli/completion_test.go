package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	checks := []string{"mul", "sqr", "div", "gcd", "round"}

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{
			"complete -F _bitexact bitexact",
			`--check|-check) COMPREPLY=( $(compgen -W "mul sqr div gcd round all" -- "${cur}") ); return 0 ;;`,
			`--calibration-profile|-calibration-profile) COMPREPLY=( $(compgen -f -- "${cur}") )`,
			"--seed|-seed) return 0 ;;",
		}},
		{"zsh", []string{
			"#compdef bitexact",
			"'--check[Operation to cross-check]:check:(mul sqr div gcd round all)'",
			"'(-q --quiet)'{-q,--quiet}'[Print only the verdict]'",
			"'--calibration-profile[Calibration profile file]:file:_files'",
		}},
		{"fish", []string{
			"complete -c bitexact -f",
			"complete -c bitexact -l check -d 'Operation to cross-check' -xa 'mul sqr div gcd round all'",
			"complete -c bitexact -s v -l verbose -d 'Show per-oracle digests'\n",
			"-l calibration-profile -d 'Calibration profile file' -rF",
		}},
		{"powershell", []string{
			"Register-ArgumentCompleter -CommandName 'bitexact'",
			"{ $_ -in @('--check', '-check') } { $values = @('mul', 'sqr', 'div', 'gcd', 'round', 'all') }",
			"@{ Name = '-q'; Help = 'Print only the verdict' }",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, checks); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q\n%s", tt.shell, want, buf.String())
				}
			}
		})
	}
}

func TestGenerateCompletionDoesNotAliasChecks(t *testing.T) {
	t.Parallel()
	checks := make([]string, 2, 8)
	copy(checks, []string{"mul", "div"})
	if err := GenerateCompletion(&bytes.Buffer{}, "fish", checks); err != nil {
		t.Fatal(err)
	}
	if got := checks[:cap(checks)][2]; got != "" {
		t.Errorf("caller's backing array was written: %q", got)
	}
}

func TestGenerateCompletionUnknownShell(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", nil); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestCompletionFlagsAreConsistent(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range completionFlags {
		for _, s := range f.spellings() {
			if seen[s] {
				t.Errorf("flag spelling %s listed twice", s)
			}
			seen[s] = true
		}
		if (f.kind == choiceValue) != (len(f.choices) > 0) {
			t.Errorf("--%s: choices must be set exactly for choice flags", f.long)
		}
		if f.kind != noValue && f.arg == "" {
			t.Errorf("--%s takes a value but has no label", f.long)
		}
	}
}
