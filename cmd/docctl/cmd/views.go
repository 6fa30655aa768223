package cmd

import (
	"github.com/spf13/cobra"
)

func newViewsCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "views",
		Short: "Lista vistas, facetas y campos de búsqueda de un tipo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docType, _ := cmd.Flags().GetString("type")
			res, err := a.uc.Views(docType)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	c.Flags().String("type", "", "Tipo de documento")
	_ = c.MarkFlagRequired("type")
	return c
}
