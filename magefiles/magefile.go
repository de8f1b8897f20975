//go:build mage

// Package main contains Mage build targets for to-texts developer tooling.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"

	"github.com/pdiddy/to-texts/internal/fixture"
)

const (
	binDir     = "bin"
	binName    = "to-texts"
	cmdPkg     = "./cmd/to-texts"
	samplesDir = "samples"
)

// Default runs when mage is invoked without a target.
var Default = All

// All runs the tests and then builds the binary.
func All() {
	mg.SerialDeps(Test, Build)
}

// Build compiles the CLI binary into bin/, stamping the version from
// $VERSION when it is set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := []string{"build", "-o", out}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)
	if err := goCmd(args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	if err := goCmd("test", "./..."); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// Samples writes a small tree of PDF and EPUB documents into samples/in
// for trying the CLI by hand.
func Samples() error {
	in := filepath.Join(samplesDir, "in")
	if err := os.RemoveAll(in); err != nil {
		return fmt.Errorf("clearing %s: %w", in, err)
	}
	if err := fixture.WriteSamples(in); err != nil {
		return err
	}
	fmt.Printf("Wrote sample documents to %s\n", in)
	return nil
}

// Smoke builds the binary and runs it over the sample tree, writing text
// files and a report under samples/.
func Smoke() error {
	mg.Deps(Build, Samples)

	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin,
		"--target", filepath.Join(samplesDir, "in"),
		"--output", filepath.Join(samplesDir, "out"),
		"--report", filepath.Join(samplesDir, "report.yaml"),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", bin, err)
	}
	return nil
}

// Clean removes build output and generated samples.
func Clean() error {
	for _, dir := range []string{binDir, samplesDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}

// goCmd runs the go tool with args, streaming its output.
func goCmd(args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Stats prints project metrics: Go production/test LOC per package and
// documentation word count.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(prod))
	for dir := range prod {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var prodTotal, testTotal int
	for _, dir := range dirs {
		fmt.Printf("  %-24s %6d prod %6d test\n", dir, prod[dir], test[dir])
		prodTotal += prod[dir]
		testTotal += test[dir]
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodTotal)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testTotal)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports whether a directory is ignored by the go tool: hidden
// directories and those starting with an underscore.
func skipDir(path string, info os.FileInfo) bool {
	name := info.Name()
	return path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"))
}

// countGoLines counts non-blank lines in Go files, keyed by package
// directory, split into production and test files.
func countGoLines(root string) (prod, test map[string]int, err error) {
	prod = make(map[string]int)
	test = make(map[string]int)
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path, info) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)
		if strings.HasSuffix(path, "_test.go") {
			test[dir] += n
		} else {
			prod[dir] += n
		}
		return nil
	})
	return prod, test, err
}

// countLines returns the number of non-blank lines in the file at path.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}

// countDocWords counts words in .md and .yaml files under root.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path, info) {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}
