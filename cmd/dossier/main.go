package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dossier-ai/dossier/config"
	srv "github.com/dossier-ai/dossier/internal/server"
)

func main() {
	// .env is optional; real deployments set DOSSIER_* directly
	_ = godotenv.Load()

	root := &cobra.Command{Use: "dossier"}
	root.AddCommand(serveCMD())
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serveCMD() *cobra.Command {
	var serveAddr string
	var cfgPath string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			return srv.Run(cfg, serveAddr)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.address)")
	serve.Flags().StringVarP(&cfgPath, "config", "c", "", "config file path")
	return serve
}
