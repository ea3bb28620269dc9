package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercury-project/mercury/x509cert"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [files...]",
	Short: "Fully decode one or more DER certificates to JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if err := decodeOne(os.Stdout, path); err != nil {
			fmt.Fprintf(os.Stderr, "mercury-x509: %s: %v\n", path, err)
		}
	}
	return nil
}

func decodeOne(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read certificate: %w", err)
	}
	cert := x509cert.Parse(data)
	var buf bytes.Buffer
	if err := cert.EmitJSON(&buf); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return writeRecord(w, buf.Bytes())
}
