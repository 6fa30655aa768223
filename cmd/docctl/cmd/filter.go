package cmd

import (
	"fmt"

	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newFilterCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "filter FILE",
		Short: "Aplica una vista, facetas y búsqueda a los documentos del archivo",
		Example: `  docctl filter orders.json --type purchase_order --view overdue
  docctl filter quotes.json --type quote --facet status=Sent --search tech`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docType, _ := cmd.Flags().GetString("type")
			viewID, _ := cmd.Flags().GetString("view")
			search, _ := cmd.Flags().GetString("search")
			facets, _ := cmd.Flags().GetStringToString("facet")

			in := dto.ApplyViewRequest{Query: dto.ViewQueryDTO{View: viewID, Facets: facets, Search: search}}
			var err error
			if entity.DocumentType(docType) == entity.TypePriceBook {
				err = readJSON(args[0], cmd.InOrStdin(), &in.PriceBooks)
			} else {
				err = readJSON(args[0], cmd.InOrStdin(), &in.Documents)
			}
			if err != nil {
				return err
			}

			if viewID != "" && !a.uc.KnownView(docType, viewID) {
				a.log.Debug().Str("type", docType).Str("view", viewID).Msg("vista desconocida, se aplica all")
			}
			res, err := a.uc.ApplyView(docType, in)
			if err != nil {
				return fmt.Errorf("filtrar %s: %w", docType, err)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	c.Flags().String("type", "", "Tipo de documento (quote, purchase_order, sales_order, price_book)")
	c.Flags().String("view", "", "Vista a aplicar (por defecto all)")
	c.Flags().String("search", "", "Texto a buscar")
	c.Flags().StringToString("facet", nil, "Filtro exacto campo=valor (repetible)")
	_ = c.MarkFlagRequired("type")
	return c
}
