package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateModes(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Mode
	}{
		{"tiny", 20, 5, ModeTooSmall},
		{"narrow", 80, 24, ModeSinglePane},
		{"wide", 140, 40, ModeSplitPane},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateWithDefaults(tt.width, tt.height, false).Mode)
		})
	}
}

func TestSplitPaneWidthsAddUp(t *testing.T) {
	d := CalculateWithDefaults(140, 40, false)
	assert.Equal(t, 140, d.TableWidth+d.DetailsWidth)
	assert.LessOrEqual(t, d.DetailsWidth, DefaultConstraints().MaxDetailsWidth)
	assert.Equal(t, 38, d.ContentHeight)
}

func TestLogsNeedHeight(t *testing.T) {
	c := DefaultConstraints()

	short := CalculateWithDefaults(120, c.MinLogsHeight-1, true)
	assert.Zero(t, short.LogsHeight)

	tall := CalculateWithDefaults(120, 40, true)
	assert.Equal(t, c.LogsHeight, tall.LogsHeight)
	assert.Equal(t, 40-2-c.LogsHeight, tall.ContentHeight)
}

func TestExtraRowsShrinkContent(t *testing.T) {
	d := Calculate(120, 30, false, 6, DefaultConstraints())
	assert.Equal(t, 30-2-6, d.ContentHeight)

	squeezed := Calculate(120, 12, false, 20, DefaultConstraints())
	assert.Equal(t, 3, squeezed.ContentHeight)
}
