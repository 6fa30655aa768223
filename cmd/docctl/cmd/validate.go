package cmd

import (
	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/spf13/cobra"
)

// validateResult completitud de un documento del archivo.
type validateResult struct {
	Index  int                      `json:"index"`
	Number string                   `json:"number,omitempty"`
	Valid  bool                     `json:"valid"`
	Issues []dto.ValidationIssueDTO `json:"issues,omitempty"`
	Error  *dto.ErrorResponse       `json:"error,omitempty"`
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Revisa que cada documento esté completo para guardarse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var docs []dto.DocumentRequest
			if err := readJSON(args[0], cmd.InOrStdin(), &docs); err != nil {
				return err
			}

			out := make([]validateResult, len(docs))
			for i, in := range docs {
				out[i] = validateResult{Index: i, Number: in.Number}
				doc, err := a.uc.Create(cmd.Context(), in)
				if err != nil {
					out[i].Error = errorOf(err)
					continue
				}
				res, err := a.uc.Validate(cmd.Context(), doc.ID)
				if err != nil {
					return err
				}
				out[i].Valid = res.Valid
				out[i].Issues = res.Issues
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
