package themes

import (
	"testing"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin").Primary)
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("default").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestTheme_TrendColor(t *testing.T) {
	tests := []struct {
		trend model.Trend
		want  string
	}{
		{model.TrendUp, string(Default.Up)},
		{model.TrendDown, string(Default.Down)},
		{model.TrendSideways, string(Default.Sideways)},
		{model.Trend("Flat"), string(Default.Muted)},
	}
	for _, tt := range tests {
		t.Run(string(tt.trend), func(t *testing.T) {
			assert.Equal(t, tt.want, string(Default.TrendColor(tt.trend)))
		})
	}
}

func TestTheme_SeverityStyle(t *testing.T) {
	assert.Equal(t, Default.StatusError.GetForeground(), Default.SeverityStyle(model.SeverityError).GetForeground())
	assert.Equal(t, Default.StatusInfo.GetForeground(), Default.SeverityStyle(model.SeverityInfo).GetForeground())
}
