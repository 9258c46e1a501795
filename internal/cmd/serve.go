package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/jishoserve/internal/logger"
	"github.com/bastiangx/jishoserve/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the msgpack IPC server over stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		// stdout carries the protocol; keep diagnostics terse on stderr.
		log.SetDefault(logger.NewWithConfig("ipc", log.GetLevel(), false, false, log.TextFormatter))
		srv := server.New(a.engine, a.assembler, a.cfg, os.Stdin, os.Stdout)
		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
