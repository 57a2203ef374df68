package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
)

// FrontMatter holds the metadata read from a page's front matter block.
// Only the description is used; every other key is ignored.
type FrontMatter struct {
	Description string
}

// frontMatterFormats lists the delimiters the frontmatter package detects by
// default, with decoders that never fail so a recognized block is always
// stripped.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", lenient(yaml.Unmarshal)),
	frontmatter.NewFormat("---yaml", "---", lenient(yaml.Unmarshal)),
	frontmatter.NewFormat("+++", "+++", lenient(toml.Unmarshal)),
	frontmatter.NewFormat("---toml", "---", lenient(toml.Unmarshal)),
	frontmatter.NewFormat(";;;", ";;;", lenient(json.Unmarshal)),
	frontmatter.NewFormat("---json", "---", lenient(json.Unmarshal)),
	{Start: "{", End: "}", Unmarshal: lenient(json.Unmarshal), UnmarshalDelims: true, RequiresNewLine: true},
}

// lenient decodes into a fresh map and leaves the destination empty when the
// block is not a mapping or does not parse.
func lenient(unmarshal frontmatter.UnmarshalFunc) frontmatter.UnmarshalFunc {
	return func(data []byte, v any) error {
		dst, ok := v.(*map[string]any)
		if !ok {
			return nil
		}
		var fields map[string]any
		if err := unmarshal(data, &fields); err == nil {
			*dst = fields
		}
		return nil
	}
}

// SplitFrontMatter separates a leading front matter block (YAML "---",
// TOML "+++" or JSON ";;;") from the Markdown body.
// Content without front matter is returned unchanged with a zero FrontMatter.
// A block that cannot be decoded is still removed from the body.
func SplitFrontMatter(content string) (FrontMatter, string) {
	var fields map[string]any

	body, err := frontmatter.Parse(strings.NewReader(content), &fields, frontMatterFormats...)
	if err != nil {
		// Not reached: the decoders above never fail.
		return FrontMatter{}, content
	}

	var meta FrontMatter
	if desc, ok := fields["description"].(string); ok {
		meta.Description = desc
	}
	return meta, string(body)
}
