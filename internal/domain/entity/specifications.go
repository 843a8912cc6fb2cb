package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// SpecKind tipo de un valor de especificación técnica.
type SpecKind uint8

const (
	SpecString SpecKind = iota + 1
	SpecNumber
	SpecBool
)

// SpecValue valor escalar etiquetado: texto, número (decimal, sin pérdida) o booleano.
// Un número leído de JSON conserva su literal ("1.50", "5000.0") para reescribirlo igual.
type SpecValue struct {
	kind SpecKind
	str  string
	num  decimal.Decimal
	lit  string
	b    bool
}

// StringSpec construye un valor de texto.
func StringSpec(s string) SpecValue { return SpecValue{kind: SpecString, str: s} }

// NumberSpec construye un valor numérico.
func NumberSpec(d decimal.Decimal) SpecValue { return SpecValue{kind: SpecNumber, num: d} }

// NumberLiteralSpec construye un valor numérico desde su literal JSON, que se conserva tal cual.
func NumberLiteralSpec(lit string) (SpecValue, error) {
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return SpecValue{}, err
	}
	return SpecValue{kind: SpecNumber, num: d, lit: lit}, nil
}

// BoolSpec construye un valor booleano.
func BoolSpec(b bool) SpecValue { return SpecValue{kind: SpecBool, b: b} }

// Kind devuelve el tipo del valor. El valor cero se comporta como texto vacío.
func (v SpecValue) Kind() SpecKind {
	if v.kind == 0 {
		return SpecString
	}
	return v.kind
}

// Number devuelve el decimal si el valor es numérico.
func (v SpecValue) Number() (decimal.Decimal, bool) {
	return v.num, v.kind == SpecNumber
}

// Bool devuelve el booleano si el valor es booleano.
func (v SpecValue) Bool() (bool, bool) {
	return v.b, v.kind == SpecBool
}

// String representación para mostrar en fichas y tablas.
func (v SpecValue) String() string {
	switch v.kind {
	case SpecNumber:
		return v.numberText()
	case SpecBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

func (v SpecValue) numberText() string {
	if v.lit != "" {
		return v.lit
	}
	return v.num.String()
}

// Equal compara tipo y valor.
func (v SpecValue) Equal(o SpecValue) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case SpecNumber:
		return v.num.Equal(o.num)
	case SpecBool:
		return v.b == o.b
	default:
		return v.str == o.str
	}
}

// MarshalJSON codifica números como número JSON (nunca como string).
func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case SpecNumber:
		return []byte(v.numberText()), nil
	case SpecBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return json.Marshal(v.str)
	}
}

// SpecEntry par clave/valor de una especificación.
type SpecEntry struct {
	Key   string
	Value SpecValue
}

// Specifications mapa ordenado de parámetros técnicos sin esquema fijo.
// Conserva el orden de inserción; el valor cero es un mapa vacío utilizable.
type Specifications struct {
	entries []SpecEntry
}

// NewSpecifications construye el mapa respetando el orden de las entradas.
func NewSpecifications(entries ...SpecEntry) Specifications {
	var s Specifications
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}
	return s
}

// Len número de claves.
func (s Specifications) Len() int { return len(s.entries) }

// Get busca una clave.
func (s Specifications) Get(key string) (SpecValue, bool) {
	for _, e := range s.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return SpecValue{}, false
}

// Set asigna el valor; una clave existente conserva su posición.
func (s *Specifications) Set(key string, v SpecValue) {
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Value = v
			return
		}
	}
	s.entries = append(s.entries, SpecEntry{Key: key, Value: v})
}

// Delete elimina una clave si existe.
func (s *Specifications) Delete(key string) {
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Entries copia de las entradas en orden.
func (s Specifications) Entries() []SpecEntry {
	out := make([]SpecEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Keys claves en orden.
func (s Specifications) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// MarshalJSON escribe un objeto JSON con las claves en su orden de inserción.
func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		val, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON lee un objeto plano conservando el orden. Solo admite texto, número y booleano;
// null en la raíz equivale a vacío.
func (s *Specifications) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("specifications: %w", err)
	}
	if tok == nil {
		s.entries = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specifications: se esperaba un objeto JSON")
	}
	var out Specifications
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return fmt.Errorf("specifications: %w", err)
		}
		key, _ := kt.(string)
		vt, err := dec.Token()
		if err != nil {
			return fmt.Errorf("specifications: %w", err)
		}
		switch x := vt.(type) {
		case string:
			out.Set(key, StringSpec(x))
		case bool:
			out.Set(key, BoolSpec(x))
		case json.Number:
			v, err := NumberLiteralSpec(x.String())
			if err != nil {
				return fmt.Errorf("specifications: número inválido en %q: %w", key, err)
			}
			out.Set(key, v)
		default:
			return fmt.Errorf("specifications: valor no soportado en %q (solo texto, número o booleano)", key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("specifications: %w", err)
	}
	*s = out
	return nil
}
