package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/client"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/config"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/logging"
)

type rootFlags struct {
	address    string
	token      string
	configPath string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	poolSize   int
	verbose    bool
}

// newClient builds a client from the config file and command-line flags,
// flags winning.
func (f *rootFlags) newClient() (*client.Client, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.LoadFrom(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	opts := []client.Option{client.FromConfig(cfg)}
	if f.address != "" {
		opts = append(opts, client.WithAddress(f.address))
	}
	if f.token != "" {
		opts = append(opts, client.WithToken(f.token))
	}
	if f.timeout > 0 {
		opts = append(opts, client.WithRequestTimeout(f.timeout))
	}
	if f.retries >= 0 {
		opts = append(opts, client.WithMaxRetries(f.retries))
	}
	if f.retryDelay > 0 {
		opts = append(opts, client.WithRetryDelay(f.retryDelay))
	}
	if f.poolSize > 0 {
		opts = append(opts, client.WithPoolSize(f.poolSize))
	}
	if f.verbose {
		logger := logging.New(os.Stderr, logging.NewTextFormatter())
		logger.SetLevel(logging.DebugLevel)
		opts = append(opts, client.WithLogger(logger))
	}

	return client.New(opts...)
}

// run wraps a command body with client setup and teardown.
func run(flags *rootFlags, body func(*cobra.Command, *client.Client, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := flags.newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		return body(cmd, c, args)
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printRaw(raw json.RawMessage) error {
	if len(raw) == 0 {
		fmt.Println("null")
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return printJSON(v)
}

func newPutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> <fields-json>",
		Short: "Store a record",
		Args:  cobra.ExactArgs(2),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			var fields map[string]interface{}
			if err := json.Unmarshal([]byte(args[1]), &fields); err != nil {
				return fmt.Errorf("fields must be a JSON object: %w", err)
			}
			ok, err := c.Put(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			return printJSON(map[string]bool{"ok": ok})
		}),
	}
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch a record",
		Args:  cobra.ExactArgs(1),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			record, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if record == nil {
				fmt.Println("null")
				return nil
			}
			return printJSON(record)
		}),
	}
}

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			ok, err := c.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(map[string]bool{"ok": ok})
		}),
	}
}

func newScanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [prefix]",
		Short: "List records by key prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			items, err := c.Scan(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			return printJSON(items)
		}),
	}
}

func newFlushCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Persist buffered writes",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.Flush(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
}

func newCompactCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compact",
		Short: "Trigger storage compaction",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.Compact(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
}

func newRotateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Rotate the active storage segment",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.Rotate(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
}

func newVerifyCmd(flags *rootFlags) *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check storage integrity",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.Verify(cmd.Context(), tier)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().StringVar(&tier, "tier", "", "restrict verification to one storage tier")
	return cmd
}

func newPingCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check daemon liveness",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			start := time.Now()
			if err := c.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("pong (%s)\n", time.Since(start).Round(time.Microsecond))
			return nil
		}),
	}
}

func newSubscribeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <event>...",
		Short: "Register an event subscription",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			handle, err := c.Subscribe(cmd.Context(), args)
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"subscriptionId": handle})
		}),
	}
}

func newUnsubscribeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe <subscription-id>",
		Short: "Tear down an event subscription",
		Args:  cobra.ExactArgs(1),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			ok, err := c.Unsubscribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(map[string]bool{"ok": ok})
		}),
	}
}
