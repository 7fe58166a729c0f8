package presets

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"
)

/*
	Recipe files

	yaml:
		recipes:
		  - name: hills
		    kind: fractal-perlin
		    period: 64

	hcl:
		define "base" {
			period = 64
		}
		recipe "hills" {
			kind   = "fractal-perlin"
			period = base_period * 2
			seed   = seedOf("hills")
		}

	Attributes of a define block are visible to later expressions as
	<define>_<attribute>. Fields left out keep the values of DefaultRecipe.
*/

// LoadFile reads recipes from a .yaml, .yml or .hcl file.
func LoadFile(path string) ([]Recipe, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(content)
	case ".hcl":
		return ParseHCL(content, path)
	default:
		return nil, fmt.Errorf("unsupported recipe file %q", path)
	}
}

type recipeFile struct {
	Recipes []Recipe `yaml:"recipes"`
}

// UnmarshalYAML fills the fields missing from the document with the
// defaults.
func (r *Recipe) UnmarshalYAML(node *yaml.Node) error {
	type plain Recipe
	p := plain(DefaultRecipe())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Recipe(p)
	return nil
}

func ParseYAML(content []byte) ([]Recipe, error) {
	var file recipeFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("recipes: %w", err)
	}
	for _, r := range file.Recipes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Recipes, nil
}

var DefaultFunctions = map[string]function.Function{
	"env":    GetEnvFunc,
	"seedOf": SeedOfFunc,
	"min":    stdlib.MinFunc,
	"max":    stdlib.MaxFunc,
	"floor":  stdlib.FloorFunc,
	"ceil":   stdlib.CeilFunc,
	"pow":    stdlib.PowFunc,
	"abs":    stdlib.AbsoluteFunc,
	"lower":  stdlib.LowerFunc,
}

// env(name, default) reads an environment variable.
var GetEnvFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
		{Name: "default", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if v, ok := os.LookupEnv(args[0].AsString()); ok {
			return cty.StringVal(v), nil
		}
		return args[1], nil
	},
})

// seedOf(text) derives a seed from a string, so that recipes can be
// seeded by name.
var SeedOfFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "text", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		h := fnv.New32a()
		h.Write([]byte(args[0].AsString()))
		return cty.NumberUIntVal(uint64(h.Sum32())), nil
	},
})

func ParseHCL(content []byte, filename string) ([]Recipe, error) {
	file, diag := hclsyntax.ParseConfig(content, filename, hcl.Pos{Line: 1, Column: 1})
	if diag.HasErrors() {
		return nil, errors.New(diag.Error())
	}
	evalCtx := &hcl.EvalContext{
		Functions: DefaultFunctions,
		Variables: make(map[string]cty.Value),
	}

	schema := &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "define", LabelNames: []string{"id"}},
			{Type: "recipe", LabelNames: []string{"name"}},
		},
	}
	body, diag := file.Body.Content(schema)
	if diag.HasErrors() {
		return nil, errors.New(diag.Error())
	}

	var ret []Recipe
	for _, block := range body.Blocks {
		switch block.Type {
		case "define":
			id := block.Labels[0]
			for _, attr := range block.Body.(*hclsyntax.Body).Attributes {
				value, diag := attr.Expr.Value(evalCtx)
				if diag.HasErrors() {
					return nil, errors.New(diag.Error())
				}
				evalCtx.Variables[fmt.Sprintf("%s_%s", id, attr.Name)] = value
			}
		case "recipe":
			r, err := parseRecipe(block, evalCtx)
			if err != nil {
				return nil, err
			}
			ret = append(ret, r)
		}
	}
	return ret, nil
}

var recipeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "kind", Required: true},
		{Name: "seed"},
		{Name: "period"},
		{Name: "octaves"},
		{Name: "persistence"},
		{Name: "lacunarity"},
		{Name: "warpStrength"},
		{Name: "regularity"},
		{Name: "snorm"},
	},
}

func parseRecipe(block *hcl.Block, evalCtx *hcl.EvalContext) (Recipe, error) {
	r := DefaultRecipe()
	r.Name = block.Labels[0]

	content, diag := block.Body.Content(recipeSchema)
	if diag.HasErrors() {
		return r, errors.New(diag.Error())
	}
	for name, attr := range content.Attributes {
		value, diag := attr.Expr.Value(evalCtx)
		if diag.HasErrors() {
			return r, errors.New(diag.Error())
		}
		var target any
		switch name {
		case "kind":
			target = &r.Kind
		case "seed":
			target = &r.Seed
		case "period":
			target = &r.Period
		case "octaves":
			target = &r.Octaves
		case "persistence":
			target = &r.Persistence
		case "lacunarity":
			target = &r.Lacunarity
		case "warpStrength":
			target = &r.WarpStrength
		case "regularity":
			target = &r.Regularity
		case "snorm":
			target = &r.SNorm
		}
		if err := gocty.FromCtyValue(value, target); err != nil {
			return r, fmt.Errorf("recipe %q: %s: %w", r.Name, name, err)
		}
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}
