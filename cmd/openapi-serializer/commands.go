package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lk2023060901/openapi-serializer-go/internal/json"
	"github.com/lk2023060901/openapi-serializer-go/pkg/encoding"
	"github.com/lk2023060901/openapi-serializer-go/pkg/log"
	"github.com/lk2023060901/openapi-serializer-go/pkg/serializer"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "openapi-serializer",
		Short: "Encode JSON documents through the response serializer",
		Long: `openapi-serializer runs a JSON document through the response serializer
and writes it with one of the registered encoders. Object keys are sorted,
which makes the output stable across runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(log.WithModule(cmd.Context(), "cli"))
		},
	}

	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newEncodersCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

type encodeOptions struct {
	input       string
	output      string
	encoder     string
	compression string
	maxDepth    int
}

func newEncodeCmd() *cobra.Command {
	opts := &encodeOptions{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Serialize and encode a JSON document",
		Example: `  openapi-serializer encode --input resource.json
  cat resource.json | openapi-serializer encode --encoder msgpack --output resource.bin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "input file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.encoder, "encoder", "e", "json", "output encoder")
	cmd.Flags().StringVar(&opts.compression, "compression", "none", "compression: none or zstd")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth, 0 for unlimited")
	return cmd
}

func runEncode(ctx context.Context, stdin io.Reader, stdout io.Writer, opts *encodeOptions) error {
	ctx = log.WithFields(ctx, zap.String("encoder", opts.encoder), zap.String("compression", opts.compression))
	enc, err := encoding.Get(opts.encoder)
	if err != nil {
		return err
	}
	switch opts.compression {
	case "", "none":
	case "zstd":
		compressed, err := encoding.NewZstd(enc, 0, 0)
		if err != nil {
			return err
		}
		defer compressed.Close()
		enc = compressed
	default:
		return merr.WrapErrParameterInvalidMsg("unknown compression %q", opts.compression)
	}

	var raw []byte
	if opts.input == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(opts.input)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	out, err := serializer.New(serializer.WithMaxDepth(opts.maxDepth)).Serialize(doc, nil)
	if err != nil {
		log.Ctx(ctx).Debug("serialize input failed", zap.Error(err))
		return err
	}
	data, err := enc.Encode(out)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug("document encoded", zap.Int("input", len(raw)), zap.Int("output", len(data)))

	if opts.output == "-" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(opts.output, data, 0o644)
}

func newEncodersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encoders",
		Short: "List registered encoders",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := color.New(color.FgCyan, color.Bold)
			for _, n := range encoding.Names() {
				enc, err := encoding.Get(n)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name.Sprint(n), enc.ContentType())
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "openapi-serializer version: %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}
