package export

import (
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNewReport(t *testing.T) {
	r := sampleReport(t)
	assert.Equal(t, "Wardrobe", r.Name)
	assert.Equal(t, model.DefaultRoot, r.Root)

	var slats int
	for _, p := range r.Pieces {
		if p.Type == model.PieceSlat {
			slats++
		}
	}
	assert.Equal(t, 8, slats)

	entries := r.CutList()
	assert.NotEmpty(t, entries)
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	assert.Equal(t, len(r.Pieces), total)
}

func TestReportValidate(t *testing.T) {
	assert.Error(t, Report{}.validate())
	assert.NoError(t, sampleReport(t).validate())
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, rgb{R: 255, G: 128, B: 0}, parseHexColor("#ff8000"))
	assert.Equal(t, rgb{R: 153, G: 153, B: 153}, parseHexColor("nope"))
	assert.Equal(t, rgb{R: 153, G: 153, B: 153}, parseHexColor("#zzzzzz"))
}
