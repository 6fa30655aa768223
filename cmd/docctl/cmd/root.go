// Package cmd comandos de docctl: totales, filtrado y validación de documentos
// comerciales leídos desde archivos JSON.
package cmd

import (
	"fmt"
	"os"

	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/validation"
	"github.com/jhoicas/commercial-docs/internal/domain/view/presets"
	"github.com/jhoicas/commercial-docs/internal/infrastructure/celview"
	"github.com/jhoicas/commercial-docs/internal/infrastructure/memory"
	"github.com/jhoicas/commercial-docs/pkg/config"
	"github.com/jhoicas/commercial-docs/pkg/logger"
	"github.com/jhoicas/commercial-docs/pkg/viewfile"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// app dependencias construidas antes de cada comando.
type app struct {
	uc  *documents.UseCase
	log *logger.Logger
}

// NewRootCommand construye docctl con todos sus subcomandos.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "docctl",
		Short: "Totales, vistas y validación de documentos comerciales",
		Long: `docctl trabaja sobre archivos JSON con arreglos de documentos
(cotizaciones, órdenes de compra, órdenes de venta) y escribe JSON en stdout.

Configuración por entorno (o .env): LOG_LEVEL, VIEWS_FILE,
VIEWS_HIGH_VALUE_THRESHOLD, VIEWS_PLACEHOLDERS, ...`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("views-file", "", "YAML de vistas adicionales (sobrescribe VIEWS_FILE)")
	root.PersistentFlags().Bool("verbose", false, "Log de depuración en stderr")

	root.AddCommand(
		newTotalsCommand(a),
		newFilterCommand(a),
		newViewsCommand(a),
		newValidateCommand(a),
	)
	return root
}

// Execute ejecuta docctl y devuelve el código de salida.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuración: %w", err)
	}

	level := cfg.Log.Level
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	// Los logs van a stderr en JSON para no mezclarse con la salida
	a.log = logger.New(logger.Config{Env: "cli", Level: level, Out: cmd.ErrOrStderr()}).WithComponent("docctl")

	viewsFile := cfg.Views.File
	if f, _ := cmd.Flags().GetString("views-file"); f != "" {
		viewsFile = f
	}
	file, err := viewfile.Load(viewsFile)
	if err != nil {
		return err
	}
	compiler, err := celview.NewCompiler()
	if err != nil {
		return err
	}
	extra, err := celview.FromFile(compiler, file)
	if err != nil {
		return fmt.Errorf("vistas configuradas: %w", err)
	}

	catalog, err := documents.NewCatalog(documents.CatalogConfig{
		Presets: presets.Options{
			HighValueThreshold: cfg.Views.HighValueThreshold,
			RecentDays:         cfg.Views.RecentDays,
			ExpiringDays:       cfg.Views.ExpiringDays,
		},
		Placeholders:     cfg.Views.Placeholders,
		DocumentBuckets:  extra.Documents,
		PriceBookBuckets: extra.PriceBook,
	})
	if err != nil {
		return err
	}

	a.uc = documents.NewUseCase(
		memory.NewDocumentStore(),
		memory.NewPriceBookStore(),
		catalog,
		validation.New(),
		documents.ListLimits{Default: cfg.List.DefaultLimit, Max: cfg.List.MaxLimit},
	)
	a.log.Debug().Str("views_file", viewsFile).Msg("docctl inicializado")
	return nil
}
