package pipeline

import (
	"regexp"
	"strings"

	"github.com/doeshing/arcgen/internal/domain"
)

// Rule is one deterministic text rewrite correcting a known divergence
// between model-generated ezdxf usage and the real ezdxf API. Rules are
// pure functions over text; a rule whose pattern does not match is a no-op,
// never an error. The table order in Rules is load-bearing where one rule's
// output could match a later rule's pattern (quote unescaping must precede
// the alignment rewrites, for example).
type Rule struct {
	Name  string
	Apply func(code string) string
}

// unitTokenRewrites maps misnamed ezdxf unit and alignment constants the
// model tends to emit onto the canonical names. Applied in declared order.
var unitTokenRewrites = []struct{ from, to string }{
	{"ezdxf.units.M_FEET", "ezdxf.units.FT"},
	{"ezdxf.units.FEET", "ezdxf.units.FT"},
	{"ezdxf.units.FOOT", "ezdxf.units.FT"},
	{"ezdxf.units.METERS", "ezdxf.units.M"},
	{"ezdxf.units.METER", "ezdxf.units.M"},
	{"ezdxf.units.INCHES", "ezdxf.units.IN"},
	{"ezdxf.units.INCH", "ezdxf.units.IN"},
	{"MTextParagraphAlignment", "MTextEntityAlignment"},
}

// validUnitConstants are the unit names the installed ezdxf actually
// exports; assignments of anything else get neutralized.
var validUnitConstants = map[string]bool{
	"FT": true, "M": true, "IN": true, "MM": true, "CM": true,
}

var (
	headerInsunitsRe = regexp.MustCompile(`doc\.header\[["']\$INSUNITS["']\]\s*=\s*[^\n#]+`)
	legacyUnitsRe    = regexp.MustCompile(`^(\s*)doc\.units\s*=\s*ezdxf\.units\.([A-Za-z_]+)\s*$`)
	linetypeAddRe    = regexp.MustCompile(`(?m)^([ \t]*)doc\.linetypes\.add\([\s\S]*?\)[ \t]*$`)
	linetypeNameRe   = regexp.MustCompile(`(["']linetype["']\s*:\s*)"[A-Za-z0-9_\-]+"`)
	layerLinetypeRe  = regexp.MustCompile(`(doc\.layers\.new\([\s\S]*?dxfattribs\s*=\s*\{[\s\S]*?"linetype"\s*:\s*)"[A-Za-z0-9_\-]+"`)
	alignDoubleRe    = regexp.MustCompile(`(set_placement\([^)]*align\s*=)\s*"([A-Za-z_]+)"`)
	alignSingleRe    = regexp.MustCompile(`(set_placement\([^)]*align\s*=)\s*'([A-Za-z_]+)'`)
	alignPointRe     = regexp.MustCompile(`align_point\s*=\s*\([^)]*\)`)
	setPosRe         = regexp.MustCompile(`\.set_pos\(`)
	fontAttribsRe    = regexp.MustCompile(`dxfattribs\s*=\s*\{[^{}]*["']font["'][^{}]*\}`)
)

// Rules returns the ordered sanitization table. Each rule addresses one
// documented failure mode observed in model output; anything not in the
// table passes through unchanged, including genuine syntax errors, which
// surface only at execution time.
func Rules() []Rule {
	return []Rule{
		{
			// Misnamed unit/measurement constants -> canonical names.
			Name: "unit-constants",
			Apply: func(code string) string {
				for _, r := range unitTokenRewrites {
					code = strings.ReplaceAll(code, r.from, r.to)
				}
				return code
			},
		},
		{
			// Legacy $INSUNITS header assignment -> the modern property.
			Name: "header-insunits",
			Apply: func(code string) string {
				return headerInsunitsRe.ReplaceAllString(code, "doc.units = ezdxf.units.FT")
			},
		},
		{
			// Remaining assignments of unsupported unit constants are
			// commented out rather than deleted, preserving line
			// correspondence for debugging.
			Name: "legacy-units",
			Apply: func(code string) string {
				lines := strings.Split(code, "\n")
				for i, line := range lines {
					m := legacyUnitsRe.FindStringSubmatch(line)
					if m == nil {
						continue
					}
					if validUnitConstants[m[2]] {
						continue
					}
					lines[i] = m[1] + "# " + strings.TrimLeft(line, " \t") + "  # sanitized: unsupported unit constant"
				}
				return strings.Join(lines, "\n")
			},
		},
		{
			// Custom linetype definitions use a pattern syntax the model
			// never gets right; replace the call with a no-op at the same
			// indentation so an otherwise-empty block stays valid.
			Name: "linetype-add",
			Apply: func(code string) string {
				return linetypeAddRe.ReplaceAllString(code, "${1}pass  # sanitized: removed invalid custom linetype definition")
			},
		},
		{
			// Unknown linetype name literals -> built-in DASHED.
			Name: "linetype-name",
			Apply: func(code string) string {
				return linetypeNameRe.ReplaceAllString(code, `${1}"DASHED"`)
			},
		},
		{
			// Same fix scoped to doc.layers.new(..., dxfattribs={...}).
			Name: "layer-linetype",
			Apply: func(code string) string {
				return layerLinetypeRe.ReplaceAllString(code, `${1}"DASHED"`)
			},
		},
		{
			// Models double-escape string literals; stray \" breaks the
			// script before it ever runs.
			Name: "unescape-quotes",
			Apply: func(code string) string {
				return strings.ReplaceAll(code, `\"`, `"`)
			},
		},
		{
			// set_placement(align="X") -> enumerated constant form.
			Name: "align-string-double",
			Apply: func(code string) string {
				return alignDoubleRe.ReplaceAllString(code, "${1} ezdxf.enums.TextEntityAlignment.${2}")
			},
		},
		{
			Name: "align-string-single",
			Apply: func(code string) string {
				return alignSingleRe.ReplaceAllString(code, "${1} ezdxf.enums.TextEntityAlignment.${2}")
			},
		},
		{
			// align_point=(x, y) is not a real ezdxf argument; center it.
			Name: "align-point",
			Apply: func(code string) string {
				return alignPointRe.ReplaceAllString(code, "align=ezdxf.enums.TextEntityAlignment.MIDDLE_CENTER")
			},
		},
		{
			// set_pos was removed from ezdxf; set_placement is the method
			// that exists.
			Name: "set-pos-rename",
			Apply: func(code string) string {
				return setPosRe.ReplaceAllString(code, ".set_placement(")
			},
		},
		{
			// The "font" dxfattribs key is not supported; keep a minimal
			// valid attribute dictionary instead.
			Name: "font-attribs",
			Apply: func(code string) string {
				return fontAttribsRe.ReplaceAllString(code, `dxfattribs={"height": 0.25}`)
			},
		},
	}
}

// entryPointGuard is the canonical block appended to CAD scripts that lack
// one, so every CAD-category script runs as a standalone program and emits
// at least minimal progress output.
const entryPointGuard = `

if __name__ == "__main__":
    print("Drawing generation complete.")
    print("Check the working directory for plan.dxf and other outputs.")
`

// Sanitize applies the full rule table in declared order, then guarantees
// CAD-category scripts carry an entry-point guard. Scripts already carrying
// a guard are left untouched (no duplicate append).
func Sanitize(code string, category domain.Category) string {
	for _, rule := range Rules() {
		code = rule.Apply(code)
	}
	if category == domain.CategoryCAD && !hasEntryPointGuard(code) {
		code = strings.TrimRight(code, "\n") + entryPointGuard
	}
	return code
}

func hasEntryPointGuard(code string) bool {
	return strings.Contains(code, "__main__")
}
