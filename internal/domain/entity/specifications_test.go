package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

func TestSpecifications_RoundTripConservaOrden(t *testing.T) {
	raw := `{"capacity":"15 gpm (60 L/min)","max_pressure":"5000 psi"}`

	var specs entity.Specifications
	require.NoError(t, json.Unmarshal([]byte(raw), &specs))
	assert.Equal(t, []string{"capacity", "max_pressure"}, specs.Keys())

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out), "el orden y los valores deben conservarse")
}

func TestSpecifications_OrdenNoAlfabetico(t *testing.T) {
	raw := `{"z_last":"1","a_first":"2","m_mid":"3"}`

	var specs entity.Specifications
	require.NoError(t, json.Unmarshal([]byte(raw), &specs))

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestSpecifications_TiposEscalares(t *testing.T) {
	raw := `{"ports":3,"rated_flow":60.50,"adjustable":true,"seal":"Buna-N"}`

	var specs entity.Specifications
	require.NoError(t, json.Unmarshal([]byte(raw), &specs))

	ports, ok := specs.Get("ports")
	require.True(t, ok)
	assert.Equal(t, entity.SpecNumber, ports.Kind())

	flow, _ := specs.Get("rated_flow")
	n, isNum := flow.Number()
	require.True(t, isNum)
	assert.True(t, n.Equal(decimal.RequireFromString("60.5")))

	adj, _ := specs.Get("adjustable")
	b, isBool := adj.Bool()
	require.True(t, isBool)
	assert.True(t, b)

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ports":3,"rated_flow":60.5,"adjustable":true,"seal":"Buna-N"}`, string(out))
	assert.Contains(t, string(out), `"ports":3`, "los números no se convierten en strings")
}

func TestSpecifications_RechazaValoresAnidados(t *testing.T) {
	var specs entity.Specifications
	assert.Error(t, json.Unmarshal([]byte(`{"a":{"b":1}}`), &specs))
	assert.Error(t, json.Unmarshal([]byte(`{"a":[1,2]}`), &specs))
	assert.Error(t, json.Unmarshal([]byte(`{"a":null}`), &specs))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &specs))
}

func TestSpecifications_NullYVacio(t *testing.T) {
	var specs entity.Specifications
	require.NoError(t, json.Unmarshal([]byte(`null`), &specs))
	assert.Equal(t, 0, specs.Len())

	out, err := json.Marshal(entity.Specifications{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestSpecifications_SetConservaPosicion(t *testing.T) {
	specs := entity.NewSpecifications(
		entity.SpecEntry{Key: "a", Value: entity.StringSpec("1")},
		entity.SpecEntry{Key: "b", Value: entity.StringSpec("2")},
	)
	specs.Set("a", entity.StringSpec("9"))
	specs.Set("c", entity.BoolSpec(false))
	assert.Equal(t, []string{"a", "b", "c"}, specs.Keys())

	v, _ := specs.Get("a")
	assert.Equal(t, "9", v.String())

	specs.Delete("b")
	assert.Equal(t, []string{"a", "c"}, specs.Keys())
}

func TestDataPoints_ConservaTiposNumericos(t *testing.T) {
	raw := `[{"x":0,"y":0},{"x":10,"y":50}]`

	var points entity.DataPoints
	require.NoError(t, json.Unmarshal([]byte(raw), &points))
	require.Len(t, points, 2)
	assert.True(t, points[1].X.Equal(decimal.NewFromInt(10)))

	out, err := json.Marshal(points)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.IsType(t, float64(0), generic[1]["y"], "y debe seguir siendo un número JSON")
}

func TestDataPoints_RechazaStrings(t *testing.T) {
	var points entity.DataPoints
	assert.Error(t, json.Unmarshal([]byte(`[{"x":"10","y":5}]`), &points))
	assert.Error(t, json.Unmarshal([]byte(`[{"x":10}]`), &points))
}

func TestDataPoints_VacioEsArreglo(t *testing.T) {
	out, err := json.Marshal(entity.DataPoints(nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(out))
}

func TestDocument_Filename(t *testing.T) {
	d := entity.Document{File: "documents/2024/cbeg-ljn_datasheet.pdf"}
	assert.Equal(t, "cbeg-ljn_datasheet.pdf", d.Filename())
	assert.True(t, entity.FileTypeManual.Valid())
	assert.False(t, entity.FileType("brochure").Valid())
}

func TestNumeros_ConservanLiteralOriginal(t *testing.T) {
	var specs entity.Specifications
	require.NoError(t, json.Unmarshal([]byte(`{"capacity":1.50,"max_pressure":5000.0,"ratio":3}`), &specs))
	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.Equal(t, `{"capacity":1.50,"max_pressure":5000.0,"ratio":3}`, string(out))

	v, _ := specs.Get("capacity")
	assert.Equal(t, "1.50", v.String())
	assert.True(t, v.Equal(entity.NumberSpec(decimal.RequireFromString("1.5"))), "la igualdad es numérica")

	var points entity.DataPoints
	require.NoError(t, json.Unmarshal([]byte(`[{"x":0.0,"y":12.250}]`), &points))
	out, err = json.Marshal(points)
	require.NoError(t, err)
	assert.Equal(t, `[{"x":0.0,"y":12.250}]`, string(out))

	points[0].Y = decimal.NewFromInt(7)
	out, err = json.Marshal(points)
	require.NoError(t, err)
	assert.Equal(t, `[{"x":0.0,"y":7}]`, string(out), "un valor modificado no reutiliza el literal")
}
