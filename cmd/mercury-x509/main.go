// Command mercury-x509 decodes DER-encoded X.509 certificates into
// newline-delimited JSON.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercury-project/mercury/internal/cliconfig"
)

// Build-time variables (injected by GoReleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

// cfg is the effective configuration for this invocation: cliconfig.Default()
// unless --config points at a YAML file, set once by loadConfig before any
// subcommand runs.
var cfg = cliconfig.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return nil
	}
	loaded, err := cliconfig.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// writeRecord writes one already-newline-terminated JSON record to w,
// re-indenting it first when cfg.Pretty is set.
func writeRecord(w io.Writer, line []byte) error {
	if !cfg.Pretty {
		_, err := w.Write(line)
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimRight(line, "\n"), "", "  "); err != nil {
		_, err := w.Write(line)
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

var rootCmd = &cobra.Command{
	Use:   "mercury-x509",
	Short: "Decode DER-encoded X.509 certificates into JSON",
	Long: `mercury-x509 decodes DER-encoded X.509 certificates into
newline-delimited JSON, without ever using the certificate's own
signature or validity to decide whether to emit a record.

Examples:
  # Decode a single certificate to stdout
  mercury-x509 decode server.der

  # Decode only the issuer/serialNumber prefix
  mercury-x509 prefix server.der

  # Decode many certificates concurrently
  mercury-x509 scan --workers 8 certs/*.der`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file (see internal/cliconfig)")
	rootCmd.PersistentPreRunE = loadConfig

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(prefixCmd)
	rootCmd.AddCommand(scanCmd)
}
