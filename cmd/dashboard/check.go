// cmd/dashboard/check.go
package main

import (
	"fmt"

	"dre-service/internal/core/dre"
	"dre-service/internal/domain"

	"github.com/spf13/cobra"
)

var checkFund string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lê a planilha de um fundo e mostra o que seria exibido",
	Long: `Busca as abas limpa e original do fundo, aplica a limpeza e a conversão
numérica e resume o resultado: período, linhas ignoradas e cartões da data mais recente.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFund, "fundo", string(domain.FundApuama), "fundo a verificar (Apuama ou Bristol)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dash, err := newDREService(cfg, logger).Dashboard(cmd.Context(), domain.Fund(checkFund), nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "DRE - Fundo %s\n", dash.Fund)
	fmt.Fprintf(out, "Período: %s a %s (%d linhas)\n", dash.MinDate.Format("02/01/2006"), dash.MaxDate.Format("02/01/2006"), len(dash.History.Rows))
	fmt.Fprintf(out, "Linhas ignoradas: %d\n", dash.Skipped)
	for _, skipped := range dash.History.Skipped {
		fmt.Fprintf(out, "  - %s\n", skipped.Error())
	}
	fmt.Fprintf(out, "Linhas na DRE original: %d\n", len(dash.Original.Rows))

	fmt.Fprintf(out, "\nIndicadores para %s\n", dash.Date.Format("02/01/2006"))
	for _, card := range dash.Cards {
		fmt.Fprintf(out, "  %-28s %18s  [%s]\n", card.Column, card.Display, card.Class)
	}
	for _, column := range dash.History.Columns {
		if alias, ok := dre.DetectDrift(column); ok {
			fmt.Fprintf(out, "Aviso: coluna %q parece ser %q e será formatada como moeda\n", column, alias)
		}
	}
	return nil
}

