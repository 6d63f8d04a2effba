package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbecker/insurate/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [catalog-file]",
	Short: "Serve the quoting engine over HTTP",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog := loadCatalog(args[0])

		port, _ := cmd.Flags().GetString("port")
		if envPort := os.Getenv("PORT"); port == "" && envPort != "" {
			port = envPort
		}
		if port == "" {
			port = "8080"
		}

		srv := server.New(catalog)
		srv.SetLogger(simpleCLILogger{})

		if err := srv.ListenAndServe(":" + port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (default $PORT or 8080)")
}
