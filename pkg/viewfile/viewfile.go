// Package viewfile lee el archivo YAML de vistas personalizadas por tipo de documento.
//
//	views:
//	  purchase_order:
//	    - id: big_drafts
//	      label: Big Drafts
//	      expr: doc.status == "Draft" && doc.grandTotal >= 5000.0
package viewfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File contenido del archivo de vistas.
type File struct {
	Views map[string][]BucketSpec `yaml:"views"`
}

// BucketSpec vista declarada como expresión booleana.
type BucketSpec struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Expr  string `yaml:"expr"`
}

// Load lee el archivo. Ruta vacía devuelve un archivo sin vistas.
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read views file: %w", err)
	}
	return Parse(data)
}

// Parse decodifica y valida el YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse views file: %w", err)
	}
	for typ, specs := range f.Views {
		for i, s := range specs {
			if strings.TrimSpace(s.ID) == "" {
				return nil, fmt.Errorf("views.%s[%d]: id requerido", typ, i)
			}
			if strings.TrimSpace(s.Expr) == "" {
				return nil, fmt.Errorf("views.%s[%d] (%s): expr requerida", typ, i, s.ID)
			}
			if s.Label == "" {
				f.Views[typ][i].Label = s.ID
			}
		}
	}
	return &f, nil
}
