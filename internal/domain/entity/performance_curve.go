package entity

// PerformanceCurve curva de rendimiento de un producto (ej. caída de presión vs caudal).
// Los puntos no tienen restricción de unicidad ni de monotonía.
type PerformanceCurve struct {
	ID         string
	ModelCode  string
	CurveType  string
	DataPoints DataPoints
}
