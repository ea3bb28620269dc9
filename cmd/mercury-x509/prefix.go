package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercury-project/mercury/internal/cliconfig"
	"github.com/mercury-project/mercury/x509cert"
)

var prefixHex bool

var prefixCmd = &cobra.Command{
	Use:   "prefix [files...]",
	Short: "Decode only the serialNumber/issuer prefix of each certificate",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPrefix,
}

func init() {
	prefixCmd.Flags().BoolVar(&prefixHex, "hex", false,
		"emit the consumed prefix bytes as a single hex field instead of parsed fields")
}

func runPrefix(cmd *cobra.Command, args []string) error {
	hex := prefixHex
	if !cmd.Flags().Changed("hex") && cfg.Output == cliconfig.OutputPrefixHex {
		hex = true
	}
	for _, path := range args {
		if err := prefixOne(os.Stdout, path, hex); err != nil {
			fmt.Fprintf(os.Stderr, "mercury-x509: %s: %v\n", path, err)
		}
	}
	return nil
}

func prefixOne(w io.Writer, path string, hex bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read certificate: %w", err)
	}
	p := x509cert.ParsePrefix(data)
	var buf bytes.Buffer
	if hex {
		p.EmitJSONHex(&buf)
	} else {
		p.EmitJSON(&buf)
	}
	buf.WriteByte('\n')
	return writeRecord(w, buf.Bytes())
}
