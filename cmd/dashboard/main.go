// cmd/dashboard/main.go
package main

import (
	"fmt"
	"os"

	"dre-service/internal/api/responses"
	"dre-service/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Painel da DRE dos fundos",
	Long: `Painel da DRE (Demonstração de Resultado do Exercício) dos fundos Apuama e Bristol.

Lê a planilha publicada no Google Sheets (ou uma cópia local .xlsx/.xls), converte os
números no formato brasileiro e mostra cartões, histórico e a DRE original.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["skipConfig"] == "true" {
			logger = zap.NewNop()
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("configuração inválida: %w", err)
		}

		if cfg.Log.Development {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("falha ao iniciar logger: %w", err)
		}
		responses.InitLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "arquivo de configuração (yaml, json ou toml)")
	rootCmd.AddCommand(serveCmd, checkCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
