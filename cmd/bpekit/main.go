// Command bpekit trains byte-level BPE models and uses them to encode and
// decode text.
//
// Usage:
//
//	bpekit train   [-config f] [-corpus a.txt,b.txt] [-vocab-size N] [-model out.json]
//	bpekit encode  [-model m.json] [-watch] [text ...]
//	bpekit decode  [-model m.json] [id ...]
//	bpekit inspect [-model m.json]
//	bpekit schema
//
// encode and decode read stdin line by line when no arguments are given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "bpekit: %v\n", err)
		os.Exit(1)
	}
}

const usage = `usage: bpekit <command> [flags] [args]

commands:
  train     learn a model from corpus files
  encode    print token ids for text
  decode    print text for token ids
  inspect   list a model's merges
  schema    print the JSON schema of model files
`

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "train":
		return runTrain(rest, stdout, stderr)
	case "encode":
		return runEncode(ctx, rest, stdin, stdout, stderr)
	case "decode":
		return runDecode(rest, stdin, stdout, stderr)
	case "inspect":
		return runInspect(rest, stdout, stderr)
	case "schema":
		return runSchema(stdout)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
