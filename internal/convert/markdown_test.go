package convert

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) any {
	t.Helper()
	v, err := Parse(text)
	require.NoError(t, err)
	return v
}

func TestRenderNull(t *testing.T) {
	assert.Equal(t, "_null_\n", RenderMarkdown(nil))
}

func TestRenderScalars(t *testing.T) {
	assert.Equal(t, "true\n", RenderMarkdown(true))
	assert.Equal(t, "3.14\n", RenderMarkdown(json.Number("3.14")))
	assert.Equal(t, "hello\n", RenderMarkdown("hello"))
}

func TestRenderEmptyCollections(t *testing.T) {
	assert.Equal(t, "_empty array_\n", RenderMarkdown(Array{}))
	assert.Equal(t, "_empty object_\n", RenderMarkdown(Object{}))
}

func TestRecordArrayBecomesTable(t *testing.T) {
	v := mustParse(t, `[{"a":1,"b":2},{"a":3,"b":4}]`)
	got := RenderMarkdown(v)
	want := "| a | b |\n" +
		"| --- | --- |\n" +
		"| 1 | 2 |\n" +
		"| 3 | 4 |\n"
	assert.Equal(t, want, got)
}

func TestTableColumnsUnionFirstSeenOrder(t *testing.T) {
	v := mustParse(t, `[{"b":1,"a":2},{"c":3,"a":4}]`)
	got := RenderMarkdown(v)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "| b | a | c |", lines[0])
	// Absent fields render as blank cells.
	assert.Equal(t, "| 1 | 2 |  |", lines[2])
	assert.Equal(t, "|  | 4 | 3 |", lines[3])
}

func TestTableCellNullIsBlank(t *testing.T) {
	v := mustParse(t, `[{"a":null,"b":"x"}]`)
	got := RenderMarkdown(v)
	assert.Contains(t, got, "|  | x |\n")
}

func TestTableCellNestedValueIsCompactJSON(t *testing.T) {
	v := mustParse(t, `[{"a":{"x":1},"b":[1,2]}]`)
	got := RenderMarkdown(v)
	assert.Contains(t, got, `| {"x":1} | [1,2] |`)
}

func TestWideUnionFallsBackToList(t *testing.T) {
	// 25 single-key objects with disjoint keys: union exceeds the
	// table bound, so this must render as a list.
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 25; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"k` + string(rune('a'+i%26)) + string(rune('0'+i/26)) + `":1}`)
	}
	sb.WriteString("]")
	v := mustParse(t, sb.String())
	got := RenderMarkdown(v)
	assert.NotContains(t, got, "| --- |")
	assert.Contains(t, got, "Item 1:")
}

func TestMixedArrayBecomesList(t *testing.T) {
	v := mustParse(t, `[1,"two",null,{"a":1}]`)
	got := RenderMarkdown(v)
	assert.Contains(t, got, "- 1\n")
	assert.Contains(t, got, "- two\n")
	assert.Contains(t, got, "- _null_\n")
	assert.Contains(t, got, "  Item 4:\n")
}

func TestListItemsReindentNestedRendering(t *testing.T) {
	v := mustParse(t, `[[1,2]]`)
	got := RenderMarkdown(v)
	want := "  Item 1:\n" +
		"  - 1\n" +
		"  - 2\n"
	assert.Equal(t, want, got)
}

func TestScalarObjectBecomesKeyValueTable(t *testing.T) {
	v := mustParse(t, `{"name":"Ada","age":36,"note":null}`)
	got := RenderMarkdown(v)
	want := "| Key | Value |\n" +
		"| --- | --- |\n" +
		"| name | Ada |\n" +
		"| age | 36 |\n" +
		"| note | _null_ |\n"
	assert.Equal(t, want, got)
}

func TestNestedObjectBecomesSections(t *testing.T) {
	v := mustParse(t, `{"title":"doc","meta":{"a":1},"tags":["x"]}`)
	got := RenderMarkdown(v)
	assert.Contains(t, got, "- title: doc\n")
	assert.Contains(t, got, "# meta\n\n")
	assert.Contains(t, got, "# tags\n\n")
	// Nested scalar-only object renders as a key/value table.
	assert.Contains(t, got, "| a | 1 |\n")
}

func TestHeadingDepthIsCapped(t *testing.T) {
	v := mustParse(t, `{"a":{"b":{"c":{"d":{"e":{"f":{"g":{"h":1}}}}}}}}`)
	got := RenderMarkdown(v)
	assert.Contains(t, got, "# a\n")
	assert.Contains(t, got, "###### g\n")
	assert.NotContains(t, got, "####### ")
}

func TestRenderIsDeterministic(t *testing.T) {
	v := mustParse(t, `{"users":[{"id":1,"name":"a"},{"id":2,"name":"b"}],"total":2}`)
	first := RenderMarkdown(v)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, RenderMarkdown(v))
	}
}

func TestScalarsAreNotMarkdownEscaped(t *testing.T) {
	// Known limitation: a "|" inside a value corrupts table layout and
	// is passed through untouched.
	v := mustParse(t, `{"a":"x|y"}`)
	got := RenderMarkdown(v)
	assert.Contains(t, got, "| a | x|y |\n")
}
