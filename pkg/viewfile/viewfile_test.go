package viewfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jhoicas/commercial-docs/pkg/viewfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
views:
  purchase_order:
    - id: big_drafts
      label: Big Drafts
      expr: doc.status == "Draft" && doc.grandTotal >= 5000.0
  quote:
    - id: mine
      expr: doc.owner == "ana"
`

func TestParse(t *testing.T) {
	f, err := viewfile.Parse([]byte(sample))
	require.NoError(t, err)

	po := f.Views["purchase_order"]
	require.Len(t, po, 1)
	assert.Equal(t, "big_drafts", po[0].ID)
	assert.Equal(t, "Big Drafts", po[0].Label)

	q := f.Views["quote"]
	require.Len(t, q, 1)
	assert.Equal(t, "mine", q[0].Label, "sin label se usa el id")

	assert.Nil(t, f.Views["sales_order"])
}

func TestParse_SinExpr(t *testing.T) {
	_, err := viewfile.Parse([]byte("views:\n  quote:\n    - id: x\n"))
	assert.Error(t, err)
}

func TestParse_YAMLInvalido(t *testing.T) {
	_, err := viewfile.Parse([]byte("views: [::"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	f, err := viewfile.Load("")
	require.NoError(t, err)
	assert.Empty(t, f.Views, "ruta vacía, sin vistas")

	path := filepath.Join(t.TempDir(), "views.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	f, err = viewfile.Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Views, 2)

	_, err = viewfile.Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}
