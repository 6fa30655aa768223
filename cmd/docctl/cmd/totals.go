package cmd

import (
	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/spf13/cobra"
)

// totalsResult totales de un documento del archivo, o el motivo del rechazo.
type totalsResult struct {
	Index  int                `json:"index"`
	Number string             `json:"number,omitempty"`
	Type   string             `json:"type"`
	Totals *dto.TotalsDTO     `json:"totals,omitempty"`
	Error  *dto.ErrorResponse `json:"error,omitempty"`
}

func newTotalsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "totals FILE",
		Short: "Recalcula líneas y totales de cada documento",
		Example: `  docctl totals quotes.json
  cat orders.json | docctl totals -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var docs []dto.DocumentRequest
			if err := readJSON(args[0], cmd.InOrStdin(), &docs); err != nil {
				return err
			}

			out := make([]totalsResult, len(docs))
			rejected := 0
			for i, in := range docs {
				out[i] = totalsResult{Index: i, Number: in.Number, Type: in.Type}
				doc, err := a.uc.Create(cmd.Context(), in)
				if err != nil {
					out[i].Error = errorOf(err)
					rejected++
					continue
				}
				out[i].Totals = &doc.Totals
			}
			a.log.Info().Int("documents", len(docs)).Int("rejected", rejected).Msg("totales calculados")
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
