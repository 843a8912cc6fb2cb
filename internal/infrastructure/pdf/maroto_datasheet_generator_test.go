package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/pdf"
)

func TestGenerateDatasheet_DevuelvePDF(t *testing.T) {
	specs := entity.NewSpecifications(
		entity.SpecEntry{Key: "capacity", Value: entity.StringSpec("60 L/min")},
		entity.SpecEntry{Key: "max_pressure", Value: entity.NumberSpec(decimal.NewFromInt(350))},
	)
	in := ports.DatasheetInput{
		Product: &entity.Product{
			ModelCode: "CBEG-LJN", Series: "Series 1", Cavity: "T-2A", Material: "Steel",
			Description:    "Counterbalance valve",
			Specifications: specs,
			MaxPressure:    decimal.NewNullDecimal(decimal.NewFromInt(350)),
		},
		Breadcrumb: "Load Holding -> Counterbalance",
		Documents:  []*entity.Document{{ID: "d", Title: "CBEG datasheet", FileType: entity.FileTypeDatasheet, Version: "2.1"}},
		Curves: []*entity.PerformanceCurve{{
			ID: "c", ModelCode: "CBEG-LJN", CurveType: "pressure_drop",
			DataPoints: entity.DataPoints{entity.Point(0, 0), entity.Point(60, 12.25)},
		}},
	}

	out, err := pdf.NewMarotoDatasheetGenerator(nil, "https://catalog.example.com").GenerateDatasheet(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateDatasheet_SinProducto(t *testing.T) {
	_, err := pdf.NewMarotoDatasheetGenerator(nil, "").GenerateDatasheet(context.Background(), ports.DatasheetInput{})
	assert.Error(t, err)
}
