package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/bjaus/outputty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled in at build time.
var Version string

type options struct {
	from           string
	to             string
	inputEncoding  string
	outputEncoding string
	orderBy        string
	ordering       string
	normalizeTypes bool
	border         string
	verbose        bool
}

var borders = map[string]outputty.BorderStyle{
	"ascii":   outputty.BorderASCII,
	"rounded": outputty.BorderRounded,
	"heavy":   outputty.BorderHeavy,
	"double":  outputty.BorderDouble,
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "outputty [file]",
		Short:         "Import, filter and export data easily.",
		Long:          "Read tabular data in one format and write it in another, pretty-printing tables by default.",
		Args:          cobra.MaximumNArgs(1),
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := io.Reader(os.Stdin)
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return run(in, cmd.OutOrStdout(), opts, isTerminal(cmd.OutOrStdout()))
		},
	}
	cmd.SetVersionTemplate(`{{.Version}}` + "\n")

	formats := make([]string, 0)
	for _, f := range outputty.Formats() {
		formats = append(formats, f.String())
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.from, "from", "f", "csv", "input format")
	flags.StringVarP(&opts.to, "to", "t", "table", "output format: "+strings.Join(formats, ", ")+" or go-template=<tmpl>")
	flags.StringVar(&opts.inputEncoding, "input-encoding", outputty.DefaultEncoding, "input text encoding")
	flags.StringVar(&opts.outputEncoding, "output-encoding", outputty.DefaultEncoding, "output text encoding")
	flags.StringVarP(&opts.orderBy, "order-by", "o", "", "sort rows by this column")
	flags.StringVar(&opts.ordering, "ordering", "asc", "sort direction (asc or desc)")
	flags.BoolVarP(&opts.normalizeTypes, "normalize-types", "n", false, "infer and convert column types")
	flags.StringVar(&opts.border, "border", "", "table border style: ascii, rounded, heavy or double")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "increase logging verbosity")
	return cmd
}

func run(in io.Reader, out io.Writer, opts options, tty bool) error {
	from, err := outputty.ParseFormat(opts.from)
	if err != nil {
		return err
	}
	to, err := outputty.ParseFormat(opts.to)
	if err != nil {
		return err
	}

	tableOpts := []outputty.Option{
		outputty.WithInputEncoding(opts.inputEncoding),
		outputty.WithOutputEncoding(opts.outputEncoding),
	}
	if opts.orderBy != "" {
		tableOpts = append(tableOpts, outputty.WithOrderBy(opts.orderBy, outputty.ParseOrdering(opts.ordering)))
	}
	switch {
	case opts.border != "":
		style, ok := borders[opts.border]
		if !ok {
			return fmt.Errorf("unknown border style %q", opts.border)
		}
		tableOpts = append(tableOpts, outputty.WithBorder(style))
	case tty:
		tableOpts = append(tableOpts, outputty.WithBorder(outputty.BorderRounded))
	}

	t, err := outputty.New(nil, tableOpts...)
	if err != nil {
		return err
	}
	if err := t.Read(from, in); err != nil {
		return fmt.Errorf("read %s: %w", from, err)
	}
	log.WithFields(log.Fields{"format": from, "rows": t.Len(), "columns": len(t.Headers())}).Debug("read table")

	if opts.normalizeTypes {
		if err := t.NormalizeTypes(); err != nil {
			return err
		}
		log.WithField("types", t.Types()).Debug("normalized column types")
	}
	if err := t.Write(to, out); err != nil {
		return fmt.Errorf("write %s: %w", to, err)
	}
	log.WithField("format", to).Debug("wrote table")
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func version() string {
	if Version != "" {
		return "outputty " + Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return "outputty " + info.Main.Version
	}
	return "outputty (unknown version)"
}
