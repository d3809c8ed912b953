// Command canonctl drives the canon package from the outside: it loads a
// machine configuration and a JSON operation script (a literal sequence of
// canonical calls, not G-code) and prints the resulting motion message
// queue. It exists to exercise the canon package end to end without
// embedding it in a larger CNC host.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"canon/canon"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "canonctl",
		Short:         "Drive the canonical motion layer from a script file",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to machine configuration JSON (defaults built in if omitted)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newDumpConfigCmd())
	return root
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadMachineConfig() (*canon.MachineConfig, error) {
	if configPath == "" {
		return canon.DefaultMachineConfig(), nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return canon.LoadConfig(data)
}

func newRunCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "run <script.json>",
		Short: "Run an operation script against the canonical layer and print the emitted queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMachineConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}
			ops, err := parseScript(data)
			if err != nil {
				return err
			}

			logger := newLogger()
			queue := canon.NewMemoryQueue()
			session := canon.NewSession(cfg, queue)
			session.SetLogger(logger)

			if err := runScript(session, ops); err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return printQueue(out, queue.Messages())
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the message queue here instead of stdout")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script.json>",
		Short: "Parse an operation script and report errors without emitting a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}
			ops, err := parseScript(data)
			if err != nil {
				return err
			}
			cfg, err := loadMachineConfig()
			if err != nil {
				return err
			}
			session := canon.NewSession(cfg, canon.NewMemoryQueue())
			session.SetLogger(newLogger())
			if err := runScript(session, ops); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d operations\n", len(ops))
			return nil
		},
	}
}

func newDumpConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-config",
		Short: "Print the effective machine configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMachineConfig()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}

// queuedMessage flattens a Message for JSON printing; the concrete message
// types in canon deliberately don't carry json tags of their own since they
// are a wire model for the queue consumer, not a CLI output format.
type queuedMessage struct {
	Line int    `json:"line"`
	Type string `json:"type"`
	Data any    `json:"data"`
}

func printQueue(w *os.File, msgs []canon.Message) error {
	out := make([]queuedMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, queuedMessage{
			Line: m.LineNumber(),
			Type: fmt.Sprintf("%T", m),
			Data: m,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
