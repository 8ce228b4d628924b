package gen

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputConfig(t *testing.T) {
	t.Run("returns grouped output settings", func(t *testing.T) {
		c := &Config{
			Target:  "./internal/greeting",
			Package: "greeting",
			Header:  "// Custom header",
		}

		output := c.Output()

		assert.Equal(t, "./internal/greeting", output.Target)
		assert.Equal(t, "greeting", output.Package)
		assert.Equal(t, "// Custom header", output.Header)
	})

	t.Run("handles empty config", func(t *testing.T) {
		c := &Config{}

		output := c.Output()

		assert.Empty(t, output.Target)
		assert.Empty(t, output.Package)
		assert.Empty(t, output.Header)
	})
}

func TestConfigHasFeature(t *testing.T) {
	c := &Config{Features: []Feature{FeatureLocale}}

	assert.True(t, c.HasFeature("locale"))
	assert.False(t, c.HasFeature("text"))
}

func TestDefaultConfigFeatures(t *testing.T) {
	c := DefaultConfig()
	for _, f := range AllFeatures {
		assert.Equal(t, f.Default, c.HasFeature(f.Name), f.Name)
	}
	for _, f := range c.Features {
		assert.True(t, f.Default, f.Name)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
	assert.Empty(t, c.Header)
	assert.Empty(t, c.Features)
	assert.NotNil(t, c.logger())
}

func TestConfigWorkers(t *testing.T) {
	assert.Equal(t, 3, (&Config{Workers: 3}).workers())
	assert.Equal(t, runtime.GOMAXPROCS(0), (&Config{}).workers())
}

func TestFeatureStageString(t *testing.T) {
	assert.Equal(t, "stable", FeatureText.Stage.String())
	assert.Equal(t, "experimental", FeatureLocale.Stage.String())
	assert.Equal(t, "unknown", FeatureStage(0).String())
}

func TestFeatureByName(t *testing.T) {
	f, ok := FeatureByName("text")
	assert.True(t, ok)
	assert.Equal(t, FeatureText.Name, f.Name)

	_, ok = FeatureByName("privacy")
	assert.False(t, ok)
}
