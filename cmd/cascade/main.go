// Command cascade is the CLI collaborator around the compression core: it
// owns file I/O, stage-list parsing, and ratio reporting, none of which the
// core package touches itself.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"

	"github.com/JoyousOne/simple-file-compressor/internal/diagnostics"
	"github.com/JoyousOne/simple-file-compressor/pipeline"
)

const compressedSuffix = ".cascade"

type commonFlags struct {
	Stages string `subcmd:"stages,,'comma-separated list of pipeline stages (huff,lzw,bwt,mtf,arith,rle); defaults to lzw,huff'"`
	Stats  bool   `subcmd:"stats,false,'print entropy and compression-ratio diagnostics'"`
}

type compressFlags struct {
	commonFlags
	Output string `subcmd:"output,,'output file, defaults to <input>.cascade'"`
}

type decompressFlags struct {
	commonFlags
	Output string `subcmd:"output,,'output file, defaults to <input> with .cascade stripped'"`
}

var cmdSet *subcmd.CommandSet

func init() {
	compressCmd := subcmd.NewCommand("compress",
		subcmd.MustRegisterFlagStruct(&compressFlags{}, nil, nil),
		runCompress, subcmd.ExactlyNumArguments(1))
	compressCmd.Document(`compress a file through the cascade pipeline.`)

	decompressCmd := subcmd.NewCommand("decompress",
		subcmd.MustRegisterFlagStruct(&decompressFlags{}, nil, nil),
		runDecompress, subcmd.ExactlyNumArguments(1))
	decompressCmd.Document(`decompress a file produced by the cascade pipeline.`)

	cmdSet = subcmd.NewCommandSet(compressCmd, decompressCmd)
	cmdSet.Document(`cascade compresses and decompresses files through a chosen pipeline of classical codec stages.`)
}

func main() {
	cmdSet.MustDispatch(context.Background())
}

func parseStages(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func printStats(label string, input []byte) {
	entropy, ratios, err := diagnostics.CompareAgainstReferences(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s entropy: %.3f bits/byte\n", label, entropy)
	for _, c := range diagnostics.ReferenceCodecs {
		r := ratios[c.Name]
		fmt.Fprintf(os.Stderr, "%s vs %s: %.2f:1 (%.1f%% space saving)\n",
			label, c.Name, r.CompressionRatio(), r.SpaceSaving()*100)
	}
}

func runCompress(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	cl := values.(*compressFlags)

	input, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	if cl.Stats {
		printStats("input", input)
	}

	compressed, err := pipeline.Compress(parseStages(cl.Stages), input)
	if err != nil {
		return err
	}

	out := cl.Output
	if out == "" {
		out = args[0] + compressedSuffix
	}
	if err := os.WriteFile(out, compressed, 0o644); err != nil {
		return err
	}

	if cl.Stats {
		fmt.Fprintf(os.Stderr, "compressed size: %d bytes (from %d)\n", len(compressed), len(input))
	}
	return nil
}

func runDecompress(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	cl := values.(*decompressFlags)

	input, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	decompressed, err := pipeline.Decompress(parseStages(cl.Stages), input)
	if err != nil {
		return err
	}

	out := cl.Output
	if out == "" {
		out = strings.TrimSuffix(args[0], compressedSuffix)
		if out == args[0] {
			out = args[0] + ".out"
		}
	}

	errs := &errors.M{}
	errs.Append(os.WriteFile(out, decompressed, 0o644))
	return errs.Err()
}
