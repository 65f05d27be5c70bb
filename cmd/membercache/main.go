package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "membercache",
		Short: "Cache-aside member service",
		Long:  "Serve and manage members stored in SQL and cached in memory or Redis",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(memberCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
