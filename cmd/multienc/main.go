// multienc reads and writes self-describing encoded values from the command line.
//
// Text is read and written with one of three strategies: multibase (a leading sigil names the base),
// bare (base58btc with no sigil) or detected (multibase when a sigil is present, otherwise every base is tried).
// Settings come from flags, MULTIENC_* environment variables and an optional multienc.yaml.
package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/stewi1014/multienc"
	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/codec"
	"github.com/stewi1014/multienc/encio"
	"github.com/stewi1014/multienc/multihash"
)

var strategies = map[string]multienc.Strategy{
	"multibase": multienc.Multibase{},
	"bare":      multienc.BareBase58{},
	"detected":  multienc.Detected{},
}

type command struct {
	name  string
	usage string
	run   func(e *env, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"encode", "encode [--hex] [DATA...]  render data (or stdin) as encoded text", runEncode},
		{"decode", "decode [TEXT...]          print every reading of encoded text", runDecode},
		{"convert", "convert [TEXT...]         re-render encoded text in --base", runConvert},
		{"bases", "bases                     list the base registry", runBases},
		{"codecs", "codecs                    list known codecs", runCodecs},
		{"varint", "varint encode N... | varint decode TEXT...", runVarint},
		{"hash", "hash [--codec NAME] [--tagged] [FILE...]  multihash files (or stdin)", runHash},
	}
}

// env is what a subcommand runs with.
type env struct {
	config   Config
	strategy multienc.Strategy
	log      *zap.Logger
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var configPath string

	flagSet := pflag.NewFlagSet("multienc", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default ./multienc.yaml if present)")
	flagSet.StringP("base", "b", "", "base to render with, by name or sigil (e.g. base16, base58btc, z)")
	flagSet.StringP("strategy", "s", "multibase", "text strategy: multibase, bare or detected")
	flagSet.String("log-level", "warn", "log level: debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stderr, flagSet)
		return nil
	}

	config, err := LoadConfig(configPath, flagSet)
	if err != nil {
		return err
	}

	logger, closeLog, err := SetupLogger(config.Log, stdout, stderr)
	if err != nil {
		return err
	}
	encio.SetLogger(logger)
	defer func() {
		encio.SetLogger(nil)
		_ = logger.Sync()
		_ = closeLog()
	}()

	e := &env{
		config:   config,
		strategy: strategies[strings.ToLower(config.Strategy)],
		log:      logger,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}

	name, rest := flagSet.Arg(0), flagSet.Args()[1:]
	for _, cmd := range commands {
		if cmd.name == name {
			logger.Debug("running command",
				zap.String("command", name),
				zap.String("strategy", config.Strategy),
				zap.String("base", config.Base))
			return cmd.run(e, rest)
		}
	}
	return fmt.Errorf("unknown command %q", name)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: multienc [flags] <command> [args]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %s\n", cmd.usage)
	}
	fmt.Fprintf(w, "\nFlags:\n%s", flagSet.FlagUsages())
}

// subFlags returns a flag set for a subcommand, writing errors to e.stderr.
func (e *env) subFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// render writes data as text in base b, as the configured strategy records it.
func (e *env) render(b base.Base, data []byte) string {
	return e.strategy.Render(e.strategy.Preferred(b), data)
}

// inputs returns args, or the whitespace separated fields of stdin if there are none.
func (e *env) inputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var fields []string
	scanner := bufio.NewScanner(e.stdin)
	scanner.Buffer(nil, int(encio.TooBig))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		fields = append(fields, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return fields, nil
}

func runEncode(e *env, args []string) error {
	fs := e.subFlags("encode")
	isHex := fs.Bool("hex", false, "arguments are hex rather than raw text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b := e.config.baseOr(base.Base58Btc)
	if fs.NArg() == 0 {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if *isHex {
			if data, err = hex.DecodeString(strings.TrimSpace(string(data))); err != nil {
				return fmt.Errorf("stdin: %w", err)
			}
		}
		fmt.Fprintln(e.stdout, e.render(b, data))
		return nil
	}

	for _, arg := range fs.Args() {
		data := []byte(arg)
		if *isHex {
			var err error
			if data, err = hex.DecodeString(arg); err != nil {
				return fmt.Errorf("%q: %w", arg, err)
			}
		}
		fmt.Fprintln(e.stdout, e.render(b, data))
	}
	return nil
}

func runDecode(e *env, args []string) error {
	texts, err := e.inputs(args)
	if err != nil {
		return err
	}
	for _, text := range texts {
		candidates, err := e.strategy.Parse(text)
		if err != nil {
			return fmt.Errorf("%q: %w", text, err)
		}
		for _, c := range candidates {
			fmt.Fprintf(e.stdout, "%s %x\n", e.strategy.DebugString(c.Base), c.Data)
		}
	}
	return nil
}

func runConvert(e *env, args []string) error {
	texts, err := e.inputs(args)
	if err != nil {
		return err
	}
	to := e.config.baseOr(base.Base58Btc)
	for _, text := range texts {
		candidates, err := e.strategy.Parse(text)
		if err != nil {
			return fmt.Errorf("%q: %w", text, err)
		}
		if len(candidates) > 1 {
			e.log.Info("ambiguous input, using the first reading",
				zap.String("text", text),
				zap.Stringer("base", candidates[0].Base),
				zap.Int("candidates", len(candidates)))
		}
		fmt.Fprintln(e.stdout, e.render(to, candidates[0].Data))
	}
	return nil
}

func runBases(e *env, _ []string) error {
	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SIGIL\tCODE\tNAME\tMULTIBASE NAME")
	for _, b := range base.Ordered() {
		fmt.Fprintf(w, "%q\t0x%x\t%s\t%s\n", b.Sigil(), b.Code(), b, b.MultibaseName())
	}
	return w.Flush()
}

func runCodecs(e *env, _ []string) error {
	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME")
	for _, entry := range codec.Registered() {
		fmt.Fprintf(w, "0x%x\t%s\n", uint64(entry.Code), entry.Name)
	}
	return w.Flush()
}

func runVarint(e *env, args []string) error {
	if len(args) == 0 {
		return errors.New("varint: want encode or decode")
	}
	switch args[0] {
	case "encode":
		b := e.config.baseOr(multienc.Varuint[uint64]{}.PreferredBase())
		for _, arg := range args[1:] {
			n, err := strconv.ParseUint(arg, 0, 64)
			if err != nil {
				return fmt.Errorf("varint: %w", err)
			}
			data, err := multienc.Varuint[uint64]{N: n}.AppendBinary(nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, e.render(b, data))
		}
		return nil
	case "decode":
		texts, err := e.inputs(args[1:])
		if err != nil {
			return err
		}
		for _, text := range texts {
			n, err := e.decodeVaruint(text)
			if err != nil {
				return fmt.Errorf("%q: %w", text, err)
			}
			fmt.Fprintln(e.stdout, n)
		}
		return nil
	default:
		return fmt.Errorf("varint: unknown subcommand %q", args[0])
	}
}

// decodeVaruint returns the value of the first candidate reading of text that holds a varint.
func (e *env) decodeVaruint(text string) (uint64, error) {
	candidates, err := e.strategy.Parse(text)
	if err != nil {
		return 0, err
	}
	for _, c := range candidates {
		var v multienc.Varuint[uint64]
		if _, err = v.DecodeBinary(c.Data); err == nil {
			return v.N, nil
		}
	}
	return 0, encio.WrapError(encio.ErrValueFailed, err, "no reading holds a varint", 0)
}

func runHash(e *env, args []string) error {
	fs := e.subFlags("hash")
	codecName := fs.String("codec", "sha2-256", "hash function: identity, sha2-256, sha2-512 or blake3")
	tagged := fs.Bool("tagged", false, "prefix the digest with the multihash codec")
	if err := fs.Parse(args); err != nil {
		return err
	}

	code, err := codec.Lookup(*codecName)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	digest := func(r io.Reader) (string, error) {
		d, err := multihash.SumReader(code, r)
		if err != nil {
			return "", err
		}
		var data []byte
		if *tagged {
			data, err = multienc.NewTagged(d).MarshalBinary()
		} else {
			data, err = d.MarshalBinary()
		}
		if err != nil {
			return "", err
		}
		return e.render(e.config.baseOr(d.PreferredBase()), data), nil
	}

	if fs.NArg() == 0 {
		text, err := digest(e.stdin)
		if err != nil {
			return fmt.Errorf("hash stdin: %w", err)
		}
		fmt.Fprintln(e.stdout, text)
		return nil
	}

	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("hash: %w", err)
		}
		text, err := digest(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("hash %s: %w", path, err)
		}
		fmt.Fprintf(e.stdout, "%s  %s\n", text, path)
	}
	return nil
}
