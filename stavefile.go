//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/jsfixer"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"fmt":   Lint.Fmt,
	"smoke": Smoke,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles bin/jsfixer with version info when sources changed.
// The tree-sitter grammars are C code, so cgo must be enabled.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building jsfixer...")
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"},
		"go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/jsfixer")
}

// Install installs jsfixer to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"},
		"go", "install", "-ldflags", ldflags(), "./cmd/jsfixer")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Smoke builds the binary and runs lint, fix --dry-run and rules against a
// scratch file containing known violations.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "jsfixer-smoke-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	sample := filepath.Join(dir, "sample.js")
	src := "var total = 0;\nif (total == 1) {\n  debugger;\n}\n"
	if err := os.WriteFile(sample, []byte(src), 0o600); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}

	// High-severity findings exit 1; anything else means the run broke.
	lint := exec.Command(binary, "lint", "--color", "never", sample)
	lint.Stdout, lint.Stderr = os.Stdout, os.Stderr
	var exitErr *exec.ExitError
	if err := lint.Run(); !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		return fmt.Errorf("lint on sample: want exit 1, got %v", err)
	}

	if err := sh.RunV(binary, "fix", "--dry-run", "--color", "never", sample); err != nil {
		return fmt.Errorf("fix --dry-run on sample: %w", err)
	}
	after, err := os.ReadFile(sample)
	if err != nil {
		return err
	}
	if string(after) != src {
		return errors.New("fix --dry-run modified the sample")
	}

	return sh.RunV(binary, "rules")
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	n := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--", "-race", "-p", n, "-parallel", n,
		"./...", "-coverprofile=coverage.out", "-covermode=atomic",
	)
}

// Bench runs the Go benchmarks.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Coverage renders coverage.out to coverage.html.
func (Test) Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg", "stavefile.go")
}

// FmtCheck fails when any Go file is not gofmt-clean.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "stavefile.go")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

// Gate runs every check CI runs, in order.
func (CI) Gate() error {
	st.SerialDeps(CI.Cgo, Lint.FmtCheck, CI.Vet, CI.Lint, Build, Test.Default, CI.ModTidy, Smoke)
	fmt.Println("CI gate passed")
	return nil
}

// Cgo fails early when the toolchain cannot build the tree-sitter grammars.
func (CI) Cgo() error {
	out, err := sh.Output("go", "env", "CGO_ENABLED")
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) != "1" {
		return errors.New("CGO_ENABLED must be 1: jsfixer links the tree-sitter JavaScript grammar")
	}
	return nil
}

// Vet runs go vet.
func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint without auto-fix.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	before := map[string][]byte{}
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	for name, data := range before {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if string(after) != string(data) {
			return fmt.Errorf("%s changed after 'go mod tidy'", name)
		}
	}
	return nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
