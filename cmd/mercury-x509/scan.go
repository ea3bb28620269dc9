package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mercury-project/mercury/internal/cliconfig"
	"github.com/mercury-project/mercury/x509cert"
)

var scanWorkers int

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Decode many certificates concurrently",
	Long: `scan fans a bounded number of worker goroutines out over the
given files, each fully decoding one certificate at a time. Output
order is not guaranteed to match input order; each line is still a
complete, independently-parseable JSON object.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0,
		"number of concurrent decode workers (0 = GOMAXPROCS)")
}

func runScan(cmd *cobra.Command, args []string) error {
	workers := scanWorkers
	if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
		workers = cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	var writeMu sync.Mutex

	for _, path := range args {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			line, err := renderScanLine(path)
			writeMu.Lock()
			defer writeMu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "mercury-x509: %s: %v\n", path, err)
				return
			}
			writeRecord(os.Stdout, line)
		}(path)
	}

	wg.Wait()
	return nil
}

// renderScanLine decodes path according to cfg.Output: a full decode,
// an issuer/serialNumber prefix, or the prefix's raw-hex rendering.
func renderScanLine(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}

	var buf bytes.Buffer
	switch cfg.Output {
	case cliconfig.OutputPrefix:
		p := x509cert.ParsePrefix(data)
		p.EmitJSON(&buf)
	case cliconfig.OutputPrefixHex:
		p := x509cert.ParsePrefix(data)
		p.EmitJSONHex(&buf)
	default:
		cert := x509cert.Parse(data)
		if err := cert.EmitJSON(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
