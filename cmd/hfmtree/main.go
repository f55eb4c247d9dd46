package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"

	huffman "github.com/3140610478/HuffmanTree"
)

const progName = "hfmtree"
const usageMessageRaw = `
Usage: hfmtree [-d] SUBCOMMAND [-o FILE] INPUT

Subcommands:
  encode [-o FILE] INPUT.txt
	Build a Huffman tree from the 7-bit text in INPUT.txt and write the
	tree and packed text to FILE (default a.hfmtree).

  decode [-o FILE] INPUT.hfmtree
	Read a tree and packed text from INPUT.hfmtree and write the decoded
	text to FILE (default standard output).

  auto [-o FILE] INPUT
	Encode or decode INPUT depending on its extension (.txt or .hfmtree).

  check INPUT.txt
	Encode INPUT.txt, decode the result, and compare it to the original.

  tree INPUT
	Print the Huffman tree for INPUT (.txt or .hfmtree) in parenthesized
	form, one code per symbol.

Options:
  -d, -debug
	Log debugging information to standard error.
`

const (
	textExt    = ".txt"
	encodedExt = ".hfmtree"

	defaultEncodedPath = "a" + encodedExt
)

var log = logging.MustGetLogger(progName)

var leveledLogBackend logging.Leveled

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-10s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(&nullWriter{})
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) {
	err := fs.Parse(args)
	if err == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if err != nil {
		usageErrorf("%s", err.Error())
	}
}

// command is a parsed subcommand.  output is "" when -o was not given.
type command struct {
	name   string
	input  string
	output string
}

func parseCommand(args []string) command {
	if len(args) == 0 {
		usageErrorf("not enough arguments; expected SUBCOMMAND")
	}

	cmd := command{name: args[0]}
	fs := newFlagSet(cmd.name)
	fs.StringVar(&cmd.output, "output", "", "")
	fs.StringVar(&cmd.output, "o", "", "")
	parseFlags(fs, args[1:])

	switch fs.NArg() {
	case 0:
		usageErrorf("not enough arguments; expected INPUT")
	case 1:
		cmd.input = fs.Arg(0)
	default:
		usageErrorf("too many arguments at %d (\"%s\")", 1, fs.Arg(1))
	}
	return cmd
}

func main() {
	startLogging()

	ourFlags := newFlagSet(progName)
	var debugLogging bool
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")
	parseFlags(ourFlags, os.Args[1:])

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	cmd := parseCommand(ourFlags.Args())
	if cmd.name == "auto" {
		switch ext := filepath.Ext(cmd.input); ext {
		case textExt:
			cmd.name = "encode"
		case encodedExt:
			cmd.name = "decode"
		default:
			exitError(fmt.Errorf("cannot tell what to do with %q: extension %q is neither %s nor %s", cmd.input, ext, textExt, encodedExt))
		}
	}

	var err error
	switch cmd.name {
	default:
		usageErrorf("unknown subcommand \"%s\"", cmd.name)
	case "encode":
		err = runEncode(cmd.input, cmd.output)
	case "decode":
		err = runDecode(cmd.input, cmd.output, os.Stdout)
	case "check":
		err = runCheck(cmd.input, os.Stdout)
	case "tree":
		err = runTree(cmd.input, os.Stdout)
	}
	if err != nil {
		exitError(err)
	}
}

// readText loads a plain-text file and rejects bytes outside of the alphabet.
func readText(path string) ([]byte, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := huffman.ValidateText(text); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("read %d bytes of text from %s", len(text), path)
	return text, nil
}

func readContainer(path string) (huffman.Container, error) {
	var c huffman.Container
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := c.UnmarshalBinary(data); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func runEncode(input string, output string) error {
	if output == "" {
		output = defaultEncodedPath
	}

	text, err := readText(input)
	if err != nil {
		return err
	}
	data, err := huffman.Compress(text)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := os.WriteFile(output, data, 0o666); err != nil {
		return err
	}
	log.Infof("encoded %s (%d bytes) to %s (%d bytes)", input, len(text), output, len(data))
	return nil
}

func runDecode(input string, output string, stdout io.Writer) error {
	c, err := readContainer(input)
	if err != nil {
		return err
	}
	text, err := c.Decode()
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if output == "" {
		_, err = stdout.Write(text)
		return err
	}
	if err := os.WriteFile(output, text, 0o666); err != nil {
		return err
	}
	log.Infof("decoded %s to %s (%d bytes)", input, output, len(text))
	return nil
}

var errMismatch = errors.New("decoded text differs from the original")

func runCheck(input string, stdout io.Writer) error {
	text, err := readText(input)
	if err != nil {
		return err
	}
	data, err := huffman.Compress(text)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	decoded, err := huffman.Decompress(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	if index := firstMismatch(text, decoded); index >= 0 {
		fmt.Fprintf(stdout, "Error (@%d)\n", index)
		return errMismatch
	}
	fmt.Fprintf(stdout, "No Error (%d bytes -> %d bytes)\n", len(text), len(data))
	return nil
}

func runTree(input string, stdout io.Writer) error {
	var t *huffman.Tree
	if filepath.Ext(input) == encodedExt {
		c, err := readContainer(input)
		if err != nil {
			return err
		}
		t = c.Tree
	} else {
		text, err := readText(input)
		if err != nil {
			return err
		}
		t, err = huffman.BuildTreeFromText(text)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	}

	fmt.Fprintln(stdout, t.String())
	table := t.CodeTable()
	_, err := table.Dump(stdout)
	return err
}

// firstMismatch returns the first offset at which a and b differ, or -1 if
// they are equal.
func firstMismatch(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
