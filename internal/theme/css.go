package theme

import "fmt"

// CSSVarPrefix prefixes every generated custom property.
const CSSVarPrefix = "--forge-"

func cssDecl(name, value string) string {
	return fmt.Sprintf("%s%s: %s;", CSSVarPrefix, name, value)
}

// GenerateCSS renders the same diff as Generate as CSS custom properties:
// globals under :root, colors under a [data-theme] selector per mode.
func GenerateCSS(d *Draft) string {
	c := Diff(d)

	var s snippet
	if c.Empty() {
		s.line(0, "/* Forge theme: no overrides */")
		return s.String()
	}

	var root []string
	for _, k := range c.Radius {
		root = append(root, cssDecl("radius-"+string(k), d.Radius.Value(k)))
	}
	for _, k := range c.Spacing {
		root = append(root, cssDecl("spacing-"+string(k), d.Spacing.Value(k)))
	}
	if c.Font {
		root = append(root, cssDecl("font-family", d.FontFamily))
	}
	if c.Shadows {
		root = append(root, cssDecl("shadows", "none"))
	}

	rule := func(selector string, decls []string) {
		if len(decls) == 0 {
			return
		}
		if len(s.lines) > 0 {
			s.blank()
		}
		s.line(0, selector+" {")
		for _, decl := range decls {
			s.line(1, decl)
		}
		s.line(0, "}")
	}

	rule(":root", root)
	for _, mode := range Modes {
		set, keys := d.Light, c.Light
		if mode == ModeDark {
			set, keys = d.Dark, c.Dark
		}
		decls := make([]string, 0, len(keys))
		for _, k := range keys {
			decls = append(decls, cssDecl(kebab(string(k)), set.Value(k)))
		}
		rule(fmt.Sprintf("[data-theme=%q]", string(mode)), decls)
	}

	return s.String()
}
