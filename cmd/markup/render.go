package main

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/element"
)

func renderCmd(opts *globalOptions) *cobra.Command {
	var (
		src    sources
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the document",
		Long: `Render the document to stdout or a file.

Examples:
  markup render --head head.html --body body.md
  markup render --head head.html -o index.html
  markup render --body untrusted.html --sanitize`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			src = src.merge(cfg.ResolvePath(cfg.Document.Head), cfg.ResolvePath(cfg.Document.Body), cfg.Document.Sanitize)

			doc, err := buildDocument(src, nil)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return writeDocument(cmd.OutOrStdout(), doc)
			}
			if err := writeFile(output, doc); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&src.head, "head", "", "Head source file")
	cmd.Flags().StringVar(&src.body, "body", "", "Body source file (.md is converted from Markdown)")
	cmd.Flags().BoolVar(&src.sanitize, "sanitize", false, "Sanitize the body HTML")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// writeDocument renders doc through a buffered writer.
func writeDocument(w io.Writer, doc element.Element) error {
	bw := bufio.NewWriter(w)
	if err := doc.Render(bw); err != nil {
		return errors.New("E001").Wrap(err)
	}
	if err := bw.Flush(); err != nil {
		return errors.New("E001").Wrap(err)
	}
	return nil
}

func writeFile(path string, doc element.Element) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New("E001").
			WithDetail("Could not create " + path + ".").
			Wrap(err)
	}
	if err := writeDocument(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.New("E001").Wrap(err)
	}
	return nil
}
