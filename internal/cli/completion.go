package cli

import (
	"fmt"
	"io"
	"strings"
)

// valueKind says what a flag's argument completes to.
type valueKind int

const (
	noValue     valueKind = iota // boolean switch
	freeValue                    // takes a value with nothing to suggest
	choiceValue                  // suggests the flag's choices
	fileValue                    // completes file names
	checkValue                   // completes the check names, plus "all"
)

// completionFlag describes one command-line flag to the completion
// generators. The Go flag package accepts both -name and --name, so only
// the long name is listed; short names are single-letter aliases.
type completionFlag struct {
	long    string
	short   string
	help    string
	arg     string // value label shown by zsh
	kind    valueKind
	choices []string
}

var completionFlags = []completionFlag{
	{long: "help", short: "h", help: "Show help message"},
	{long: "version", short: "V", help: "Show version information"},
	{long: "check", help: "Operation to cross-check", arg: "check", kind: checkValue},
	{long: "words", help: "Operand size in 32-bit words", arg: "words", kind: choiceValue, choices: []string{"64", "256", "1024", "4096"}},
	{long: "divisor-words", help: "Divisor size in 32-bit words", arg: "words", kind: choiceValue, choices: []string{"32", "96", "512"}},
	{long: "iterations", help: "Operand pairs per check", arg: "count", kind: choiceValue, choices: []string{"8", "32", "128"}},
	{long: "seed", help: "Operand generator seed", arg: "seed", kind: freeValue},
	{long: "oracles", help: "Comma-separated oracles to compare, or all", arg: "oracles", kind: freeValue},
	{long: "timeout", help: "Maximum duration of the run", arg: "duration", kind: choiceValue, choices: []string{"30s", "1m", "5m", "30m"}},
	{long: "karatsuba", help: "Karatsuba threshold in words", arg: "words", kind: choiceValue, choices: []string{"16", "32", "48", "80"}},
	{long: "toom", help: "Toom-Cook-3 threshold in words", arg: "words", kind: choiceValue, choices: []string{"96", "160", "240", "320"}},
	{long: "bz", help: "Burnikel-Ziegler threshold in words", arg: "words", kind: choiceValue, choices: []string{"40", "60", "80", "120"}},
	{long: "bz-offset", help: "Burnikel-Ziegler dividend offset in words", arg: "words", kind: choiceValue, choices: []string{"20", "40", "60"}},
	{long: "verbose", short: "v", help: "Show per-oracle digests"},
	{long: "quiet", short: "q", help: "Print only the verdict"},
	{long: "no-color", help: "Disable colored output"},
	{long: "tui", help: "Run the interactive dashboard"},
	{long: "metrics-addr", help: "Serve Prometheus metrics on this address", arg: "address", kind: choiceValue, choices: []string{":9090", "localhost:9090"}},
	{long: "calibrate", help: "Measure engine thresholds and save a profile"},
	{long: "calibration-profile", help: "Calibration profile file", arg: "file", kind: fileValue},
	{long: "completion", help: "Print a completion script", arg: "shell", kind: choiceValue, choices: []string{"bash", "zsh", "fish", "powershell"}},
}

// GenerateCompletion writes the completion script of shell to out. checks
// lists the valid -check values besides "all".
func GenerateCompletion(out io.Writer, shell string, checks []string) error {
	gen, ok := map[string]func([]string) string{
		"bash":       bashCompletion,
		"zsh":        zshCompletion,
		"fish":       fishCompletion,
		"powershell": powerShellCompletion,
		"ps":         powerShellCompletion,
	}[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, gen(append(checks[:len(checks):len(checks)], "all"))); err != nil {
		return fmt.Errorf("writing %s completion: %w", shell, err)
	}
	return nil
}

// spellings returns every accepted command-line form of f.
func (f completionFlag) spellings() []string {
	s := []string{"--" + f.long, "-" + f.long}
	if f.short != "" {
		s = append(s, "-"+f.short)
	}
	return s
}

func (f completionFlag) values(checks []string) []string {
	if f.kind == checkValue {
		return checks
	}
	return f.choices
}

func bashCompletion(checks []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range completionFlags {
		opts = append(opts, "--"+f.long)
		if f.short != "" {
			opts = append(opts, "-"+f.short)
		}
		var reply string
		switch f.kind {
		case noValue:
			continue
		case freeValue:
			reply = "return 0"
		case fileValue:
			reply = `COMPREPLY=( $(compgen -f -- "${cur}") ); return 0`
		default:
			reply = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") ); return 0`, strings.Join(f.values(checks), " "))
		}
		fmt.Fprintf(&cases, "        %s) %s ;;\n", strings.Join(f.spellings(), "|"), reply)
	}
	return fmt.Sprintf(`# bash completion for bitexact
# source this file from ~/.bashrc

_bitexact() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    local prev="${COMP_WORDS[COMP_CWORD-1]}"
    COMPREPLY=()
    case "${prev}" in
%s    esac
    COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
}

complete -F _bitexact bitexact
`, cases.String(), strings.Join(opts, " "))
}

func zshCompletion(checks []string) string {
	var specs []string
	for _, f := range completionFlags {
		var action string
		switch f.kind {
		case freeValue:
			action = ":" + f.arg + ":"
		case fileValue:
			action = ":" + f.arg + ":_files"
		case choiceValue, checkValue:
			action = fmt.Sprintf(":%s:(%s)", f.arg, strings.Join(f.values(checks), " "))
		}
		if f.short != "" {
			specs = append(specs, fmt.Sprintf("'(-%[1]s --%[2]s)'{-%[1]s,--%[2]s}'[%[3]s]%[4]s'", f.short, f.long, f.help, action))
		} else {
			specs = append(specs, fmt.Sprintf("'--%s[%s]%s'", f.long, f.help, action))
		}
	}
	return "#compdef bitexact\n\n_arguments -s \\\n    " + strings.Join(specs, " \\\n    ") + "\n"
}

func fishCompletion(checks []string) string {
	var b strings.Builder
	b.WriteString("# fish completion for bitexact\ncomplete -c bitexact -f\n")
	for _, f := range completionFlags {
		b.WriteString("complete -c bitexact")
		if f.short != "" {
			b.WriteString(" -s " + f.short)
		}
		fmt.Fprintf(&b, " -l %s -d '%s'", f.long, f.help)
		switch f.kind {
		case freeValue:
			b.WriteString(" -x")
		case fileValue:
			b.WriteString(" -rF")
		case choiceValue, checkValue:
			fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.values(checks), " "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func powerShellCompletion(checks []string) string {
	quote := func(vals []string) string {
		q := make([]string, len(vals))
		for i, v := range vals {
			q[i] = "'" + v + "'"
		}
		return strings.Join(q, ", ")
	}
	var options, cases strings.Builder
	for _, f := range completionFlags {
		for _, name := range []string{"--" + f.long, "-" + f.short} {
			if name != "-" {
				fmt.Fprintf(&options, "        @{ Name = '%s'; Help = '%s' }\n", name, f.help)
			}
		}
		if f.kind == choiceValue || f.kind == checkValue {
			fmt.Fprintf(&cases, "        { $_ -in @(%s) } { $values = @(%s) }\n", quote(f.spellings()), quote(f.values(checks)))
		}
	}
	return fmt.Sprintf(`# PowerShell completion for bitexact
# dot-source this file from $PROFILE

Register-ArgumentCompleter -CommandName 'bitexact' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s    )
    $elements = $commandAst.CommandElements
    $prev = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    if ($wordToComplete -ne '' -and $elements.Count -gt 2) { $prev = $elements[-2].ToString() }

    $values = $null
    switch ($prev) {
%s    }
    if ($values) {
        $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Help)
    }
}
`, options.String(), cases.String())
}
