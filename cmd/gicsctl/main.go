// gicsctl is a command-line client for the GICS daemon. It speaks the
// daemon's newline-delimited JSON-RPC protocol over the local socket and
// prints results as JSON on stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "gicsctl",
		Short: "Command-line client for the GICS daemon",
		Long: `gicsctl talks to a running GICS daemon over its local IPC socket.

Records are key/field-map pairs; the daemon also exposes maintenance
operations and its analytics engine (insights, forecasts, anomalies).`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.address, "address", "", "daemon socket path (default: platform socket)")
	pf.StringVar(&flags.token, "token", "", "auth token (default: token-file discovery)")
	pf.StringVar(&flags.configPath, "config", "", "config file (default: ~/.gics/config.toml)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "request timeout")
	pf.IntVar(&flags.retries, "retries", -1, "retries after the first attempt")
	pf.DurationVar(&flags.retryDelay, "retry-delay", 0, "delay between attempts")
	pf.IntVar(&flags.poolSize, "pool-size", 0, "idle connection pool size")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(
		newPutCmd(flags),
		newGetCmd(flags),
		newDeleteCmd(flags),
		newScanCmd(flags),
		newFlushCmd(flags),
		newCompactCmd(flags),
		newRotateCmd(flags),
		newVerifyCmd(flags),
		newPingCmd(flags),
		newSubscribeCmd(flags),
		newUnsubscribeCmd(flags),
		newInsightCmd(flags),
	)

	return cmd
}
