package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"
	"github.com/takoeight0821/cdecl/internal/driver"
)

func main() {
	const (
		inputUsage = "input file path (default: standard input)"
	)
	var inputPath string
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")

	config := driver.DefaultConfig()
	flag.IntVar(&config.MaxTokenLen, "max-token", config.MaxTokenLen, "maximum length of a keyword or identifier")
	flag.IntVar(&config.MaxDepth, "max-depth", config.MaxDepth, "maximum number of tokens left of the identifier")
	repl := flag.Bool("repl", false, "pronounce one declaration per prompt line")
	tokens := flag.Bool("tokens", false, "print the tokens read before the description")

	flag.Parse()

	runner := driver.NewRunner(config)

	if *repl {
		err := RunPrompt(runner)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	in := os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := RunOnce(runner, in, os.Stdout, *tokens); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// RunOnce pronounces a single declaration. Nothing is written to out unless
// the whole declaration was understood.
func RunOnce(runner *driver.Runner, in io.Reader, out io.Writer, showTokens bool) error {
	if !showTokens {
		phrase, err := runner.Run(in)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, phrase)
		return err
	}

	toks, phrase, err := runner.Trace(in)
	if err != nil {
		return err
	}
	for _, tok := range toks {
		if _, err := fmt.Fprintln(out, tok); err != nil {
			return err
		}
	}
	_, err = io.WriteString(out, phrase)
	return err
}

var history = filepath.Join(xdg.DataHome, "cdecl", ".cdecl_history")

func RunPrompt(runner *driver.Runner) error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("cdecl> ")
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		phrase, err := runner.RunSource(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Print(phrase)
	}
}
