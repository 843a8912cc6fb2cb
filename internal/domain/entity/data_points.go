package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DataPoint par (x, y) de una curva de rendimiento.
// Los puntos leídos de JSON conservan el literal de cada coordenada.
type DataPoint struct {
	X decimal.Decimal
	Y decimal.Decimal

	xLit, yLit string
}

// Point atajo para construir puntos desde float64 (usado en cargas y tests).
func Point(x, y float64) DataPoint {
	return DataPoint{X: decimal.NewFromFloat(x), Y: decimal.NewFromFloat(y)}
}

// MarshalJSON escribe {"x":<número>,"y":<número>}.
func (p DataPoint) MarshalJSON() ([]byte, error) {
	return []byte(`{"x":` + coordText(p.X, p.xLit) + `,"y":` + coordText(p.Y, p.yLit) + `}`), nil
}

// coordText usa el literal original solo si sigue representando el valor actual.
func coordText(d decimal.Decimal, lit string) string {
	if lit != "" {
		if l, err := decimal.NewFromString(lit); err == nil && l.Equal(d) {
			return lit
		}
	}
	return d.String()
}

// UnmarshalJSON exige x e y como números JSON; los strings se rechazan.
func (p *DataPoint) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("data point: %w", err)
	}
	x, xLit, err := pointCoord(raw, "x")
	if err != nil {
		return err
	}
	y, yLit, err := pointCoord(raw, "y")
	if err != nil {
		return err
	}
	*p = DataPoint{X: x, Y: y, xLit: xLit, yLit: yLit}
	return nil
}

func pointCoord(raw map[string]any, key string) (decimal.Decimal, string, error) {
	n, ok := raw[key].(json.Number)
	if !ok {
		return decimal.Zero, "", fmt.Errorf("data point: %q debe ser numérico", key)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("data point: %q: %w", key, err)
	}
	return d, n.String(), nil
}

// DataPoints secuencia ordenada de puntos.
type DataPoints []DataPoint

// MarshalJSON nunca emite null: una curva sin puntos es [].
func (d DataPoints) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]DataPoint(d))
}
