// Package celview compila vistas declaradas en configuración (expresiones CEL) a buckets
// del motor de vistas.
package celview

import (
	"fmt"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/jhoicas/commercial-docs/internal/domain/view"
	"github.com/jhoicas/commercial-docs/pkg/viewfile"
)

// Attributed registro que además se expone como mapa para las expresiones.
type Attributed interface {
	view.Record
	Attributes() map[string]any
}

// Compiler entorno CEL con las variables doc (mapa) y now (timestamp).
type Compiler struct {
	env *cel.Env
}

// NewCompiler construye el entorno.
func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("doc", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("now", cel.TimestampType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	return &Compiler{env: env}, nil
}

// Compile valida la expresión: debe compilar y producir bool (o dyn, verificado al evaluar).
func (c *Compiler) Compile(expr string) (cel.Program, error) {
	ast, iss := c.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("la expresión debe ser booleana, es %s", out)
	}
	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel program: %w", err)
	}
	return prg, nil
}

// Buckets compila las especificaciones en buckets. Cualquier error de compilación
// invalida el conjunto completo.
func Buckets[R Attributed](c *Compiler, specs []viewfile.BucketSpec) ([]view.Bucket[R], error) {
	out := make([]view.Bucket[R], 0, len(specs))
	for _, s := range specs {
		prg, err := c.Compile(s.Expr)
		if err != nil {
			return nil, fmt.Errorf("vista %s: %w", s.ID, err)
		}
		out = append(out, view.Bucket[R]{
			ID:    s.ID,
			Label: s.Label,
			Match: matcher[R](prg),
		})
	}
	return out, nil
}

// matcher un error de evaluación (campo ausente, tipos incompatibles) equivale a no coincidir.
func matcher[R Attributed](prg cel.Program) func(R, time.Time) bool {
	return func(rec R, now time.Time) bool {
		val, _, err := prg.Eval(map[string]any{
			"doc": rec.Attributes(),
			"now": now,
		})
		if err != nil {
			return false
		}
		b, ok := val.Value().(bool)
		return ok && b
	}
}
