package pipeline

import (
	"strings"
	"testing"

	"github.com/doeshing/arcgen/internal/domain"
)

func ruleByName(t *testing.T, name string) Rule {
	t.Helper()
	for _, rule := range Rules() {
		if rule.Name == name {
			return rule
		}
	}
	t.Fatalf("no rule named %q", name)
	return Rule{}
}

func TestSanitizeRules(t *testing.T) {
	tests := []struct {
		name string
		rule string
		in   string
		want string
	}{
		{
			name: "FEET becomes FT",
			rule: "unit-constants",
			in:   "doc.units = ezdxf.units.FEET",
			want: "doc.units = ezdxf.units.FT",
		},
		{
			name: "M_FEET becomes FT",
			rule: "unit-constants",
			in:   "doc.units = ezdxf.units.M_FEET",
			want: "doc.units = ezdxf.units.FT",
		},
		{
			name: "METERS becomes M",
			rule: "unit-constants",
			in:   "doc.units = ezdxf.units.METERS",
			want: "doc.units = ezdxf.units.M",
		},
		{
			name: "paragraph alignment enum renamed",
			rule: "unit-constants",
			in:   "mt.dxf.attachment_point = ezdxf.enums.MTextParagraphAlignment.LEFT",
			want: "mt.dxf.attachment_point = ezdxf.enums.MTextEntityAlignment.LEFT",
		},
		{
			name: "INSUNITS header assignment replaced",
			rule: "header-insunits",
			in:   `doc.header["$INSUNITS"] = 1`,
			want: "doc.units = ezdxf.units.FT",
		},
		{
			name: "unsupported unit constant commented out",
			rule: "legacy-units",
			in:   "doc.units = ezdxf.units.KILOMETERS",
			want: "# doc.units = ezdxf.units.KILOMETERS  # sanitized: unsupported unit constant",
		},
		{
			name: "supported unit constant untouched",
			rule: "legacy-units",
			in:   "doc.units = ezdxf.units.FT",
			want: "doc.units = ezdxf.units.FT",
		},
		{
			name: "custom linetype definition removed",
			rule: "linetype-add",
			in:   "def setup(doc):\n    doc.linetypes.add(\"DASHED2\", pattern=[0.5, 0.25, -0.25])",
			want: "def setup(doc):\n    pass  # sanitized: removed invalid custom linetype definition",
		},
		{
			name: "unknown linetype literal becomes DASHED",
			rule: "linetype-name",
			in:   `msp.add_line(p1, p2, dxfattribs={"linetype": "HIDDEN2"})`,
			want: `msp.add_line(p1, p2, dxfattribs={"linetype": "DASHED"})`,
		},
		{
			name: "escaped quotes unescaped",
			rule: "unescape-quotes",
			in:   `print(\"done\")`,
			want: `print("done")`,
		},
		{
			name: "double quoted align becomes enum",
			rule: "align-string-double",
			in:   `label.set_placement(insert, align="MIDDLE_CENTER")`,
			want: `label.set_placement(insert, align= ezdxf.enums.TextEntityAlignment.MIDDLE_CENTER)`,
		},
		{
			name: "single quoted align becomes enum",
			rule: "align-string-single",
			in:   `label.set_placement(insert, align='TOP_LEFT')`,
			want: `label.set_placement(insert, align= ezdxf.enums.TextEntityAlignment.TOP_LEFT)`,
		},
		{
			name: "align_point argument centered",
			rule: "align-point",
			in:   `msp.add_text("A", align_point=(5, 5))`,
			want: `msp.add_text("A", align=ezdxf.enums.TextEntityAlignment.MIDDLE_CENTER)`,
		},
		{
			name: "set_pos renamed",
			rule: "set-pos-rename",
			in:   "txt.set_pos((1, 2))",
			want: "txt.set_placement((1, 2))",
		},
		{
			name: "font dxfattribs reduced to height",
			rule: "font-attribs",
			in:   `msp.add_text("t", dxfattribs={"font": "Arial.ttf", "height": 2})`,
			want: `msp.add_text("t", dxfattribs={"height": 0.25})`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := ruleByName(t, tt.rule)
			if got := rule.Apply(tt.in); got != tt.want {
				t.Fatalf("rule %s:\n got  %q\n want %q", tt.rule, got, tt.want)
			}
		})
	}
}

func TestSanitizeRulesAreNoOpsOnCleanCode(t *testing.T) {
	clean := "import ezdxf\n\ndoc = ezdxf.new()\ndoc.units = ezdxf.units.FT\nmsp = doc.modelspace()\nmsp.add_line((0, 0), (40, 0))\ndoc.saveas(\"plan.dxf\")"
	for _, rule := range Rules() {
		if got := rule.Apply(clean); got != clean {
			t.Fatalf("rule %s modified clean code:\n%s", rule.Name, got)
		}
	}
}

func TestSanitizeAppendsEntryPointGuardForCAD(t *testing.T) {
	code := "import ezdxf\ndoc = ezdxf.new()\ndoc.saveas(\"plan.dxf\")"
	got := Sanitize(code, domain.CategoryCAD)
	if count := strings.Count(got, "__main__"); count != 1 {
		t.Fatalf("expected exactly one entry-point guard, found %d", count)
	}
	if !strings.HasPrefix(got, code) {
		t.Fatalf("guard must be appended, not prepended:\n%s", got)
	}
}

func TestSanitizeKeepsExistingGuard(t *testing.T) {
	code := "import ezdxf\n\nif __name__ == \"__main__\":\n    main()"
	got := Sanitize(code, domain.CategoryCAD)
	if got != code {
		t.Fatalf("guarded script must pass through unchanged:\n%s", got)
	}
}

func TestSanitizeSkipsGuardForOtherCategories(t *testing.T) {
	code := "print('hello')"
	for _, category := range []domain.Category{
		domain.CategoryDataAnalysis,
		domain.CategoryWebApp,
		domain.CategoryPythonScript,
		domain.CategoryGeneral,
	} {
		if got := Sanitize(code, category); strings.Contains(got, "__main__") {
			t.Fatalf("category %s must not gain an entry-point guard", category)
		}
	}
}

func TestSanitizeAppliesRulesInOrder(t *testing.T) {
	// Escaped quotes hide the align pattern until unescaping runs, so the
	// combined pass must fix both.
	in := `label.set_placement(insert, align=\"BOTTOM_LEFT\")`
	got := Sanitize(in, domain.CategoryGeneral)
	want := `label.set_placement(insert, align= ezdxf.enums.TextEntityAlignment.BOTTOM_LEFT)`
	if got != want {
		t.Fatalf("combined pass:\n got  %q\n want %q", got, want)
	}
}
