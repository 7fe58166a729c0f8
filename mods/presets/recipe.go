package presets

import (
	"fmt"

	"github.com/machbase/neo-noise/mods/adapters"
	"github.com/machbase/neo-noise/mods/logging"
	"github.com/machbase/neo-noise/mods/noise"
)

const (
	DefaultPeriod       = 32
	DefaultOctaves      = 8
	DefaultPersistence  = 0.6
	DefaultLacunarity   = 1.8
	DefaultWarpStrength = 1.0

	MaxOctaves = 32
)

// Recipe is a named kind together with its parameters. Parameters a kind
// does not use are ignored.
type Recipe struct {
	Name         string  `yaml:"name"`
	Kind         string  `yaml:"kind"`
	Seed         uint32  `yaml:"seed"`
	Period       float32 `yaml:"period"`
	Octaves      int     `yaml:"octaves"`
	Persistence  float32 `yaml:"persistence"`
	Lacunarity   float32 `yaml:"lacunarity"`
	WarpStrength float32 `yaml:"warpStrength"`
	Regularity   float32 `yaml:"regularity"`
	// SNorm maps the output from [0, 1] to [-1, 1].
	SNorm bool `yaml:"snorm"`
}

func DefaultRecipe() Recipe {
	return Recipe{
		Kind:         "perlin",
		Period:       DefaultPeriod,
		Octaves:      DefaultOctaves,
		Persistence:  DefaultPersistence,
		Lacunarity:   DefaultLacunarity,
		WarpStrength: DefaultWarpStrength,
	}
}

func (r Recipe) Validate() error {
	if _, err := LookupKind(r.Kind); err != nil {
		return err
	}
	if r.Period <= 0 {
		return fmt.Errorf("recipe %q: period must be positive, got %v", r.Name, r.Period)
	}
	if r.Octaves < 0 || r.Octaves > MaxOctaves {
		return fmt.Errorf("recipe %q: octaves must be in [0, %d], got %d", r.Name, MaxOctaves, r.Octaves)
	}
	if r.Persistence < 0 {
		return fmt.Errorf("recipe %q: negative persistence %v", r.Name, r.Persistence)
	}
	if r.Lacunarity < 0 {
		return fmt.Errorf("recipe %q: negative lacunarity %v", r.Name, r.Lacunarity)
	}
	if r.Regularity < 0 || r.Regularity > 1 {
		return fmt.Errorf("recipe %q: regularity must be in [0, 1], got %v", r.Name, r.Regularity)
	}
	return nil
}

// Build returns the noise of the recipe, seeded and scaled to its period.
func Build(r Recipe) (noise.Dynamic[vec, float32], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	kind, _ := LookupKind(r.Kind)

	log := logging.GetLog("presets")
	if log.DebugEnabled() {
		log.Debugf("build %q kind=%s seed=%d period=%v octaves=%d", r.Name, r.Kind, r.Seed, r.Period, r.Octaves)
	}

	var ret noise.Dynamic[vec, float32]
	if r.SNorm {
		ret = noise.NewAdaptive[vec, float32](kind.build(r), adapters.UNormToSNorm[float32]{})
	} else {
		ret = noise.New[vec, float32](kind.build(r))
	}
	ret.SetSeed(r.Seed)
	ret.SetPeriod(r.Period)
	return ret, nil
}

// Find returns the recipe called name.
func Find(recipes []Recipe, name string) (Recipe, error) {
	for _, r := range recipes {
		if r.Name == name {
			return r, nil
		}
	}
	return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
}
