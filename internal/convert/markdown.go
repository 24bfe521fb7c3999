package convert

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Markers used for values that have no natural Markdown form.
const (
	nullMarker        = "_null_"
	emptyArrayMarker  = "_empty array_"
	emptyObjectMarker = "_empty object_"
)

// maxTableColumns bounds the record-table heuristic: arrays of objects
// whose union of keys exceeds this render as lists instead.
const maxTableColumns = 20

// maxHeadingDepth caps nested-object heading levels at Markdown's h6.
const maxHeadingDepth = 6

// RenderMarkdown converts a parsed JSON value into a Markdown document.
// Arrays of similarly-shaped objects become tables, scalar-only objects
// become key/value tables, and nested structures become heading
// sections. Scalar text is emitted as-is: Markdown special characters
// inside values (a "|" in a table cell, for instance) are not escaped.
func RenderMarkdown(v any) string {
	return renderValue(v, 0)
}

func renderValue(v any, depth int) string {
	switch t := v.(type) {
	case nil:
		return nullMarker + "\n"
	case Object:
		return renderObject(t, depth)
	case Array:
		return renderArray(t, depth)
	default:
		return scalarText(t) + "\n"
	}
}

// arrayStrategy and objectStrategy make the shape heuristics explicit:
// each rule is an independent predicate, evaluated in precedence order.
type arrayStrategy int

const (
	arrayEmpty arrayStrategy = iota
	arrayTable
	arrayList
)

func classifyArray(a Array) (arrayStrategy, []string) {
	if len(a) == 0 {
		return arrayEmpty, nil
	}
	cols, ok := tableColumns(a)
	if ok {
		return arrayTable, cols
	}
	return arrayList, nil
}

// tableColumns reports whether every element is a non-null object and,
// if so, the union of keys in first-seen order. The table form applies
// only when the union holds between 1 and maxTableColumns keys.
func tableColumns(a Array) ([]string, bool) {
	var cols []string
	seen := map[string]bool{}
	for _, el := range a {
		obj, ok := el.(Object)
		if !ok {
			return nil, false
		}
		for _, m := range obj {
			if !seen[m.Key] {
				seen[m.Key] = true
				cols = append(cols, m.Key)
			}
		}
	}
	if len(cols) == 0 || len(cols) > maxTableColumns {
		return nil, false
	}
	return cols, true
}

func renderArray(a Array, depth int) string {
	strategy, cols := classifyArray(a)
	switch strategy {
	case arrayEmpty:
		return emptyArrayMarker + "\n"
	case arrayTable:
		return renderRecordTable(a, cols)
	default:
		return renderList(a, depth)
	}
}

func renderRecordTable(a Array, cols []string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(cols, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(cols)) + "\n")
	for _, el := range a {
		obj := el.(Object)
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = tableCell(obj, col)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

// tableCell renders one field of a record row: blank for absent or
// null fields, a compact single-line JSON encoding for nested
// structures, plain text otherwise.
func tableCell(obj Object, key string) string {
	v, ok := obj.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch v.(type) {
	case Object, Array:
		return Serialize(v, IndentNone())
	}
	return scalarText(v)
}

func renderList(a Array, depth int) string {
	var b strings.Builder
	for i, el := range a {
		switch el.(type) {
		case Object, Array:
			block := fmt.Sprintf("Item %d:\n", i+1) + renderValue(el, depth+1)
			b.WriteString(indentLines(block, "  "))
		default:
			if el == nil {
				b.WriteString("- " + nullMarker + "\n")
			} else {
				b.WriteString("- " + scalarText(el) + "\n")
			}
		}
	}
	return b.String()
}

func renderObject(o Object, depth int) string {
	if len(o) == 0 {
		return emptyObjectMarker + "\n"
	}
	if !hasNestedMember(o) {
		return renderKeyValueTable(o)
	}
	return renderSections(o, depth)
}

// hasNestedMember reports whether any member holds a non-null object or
// array.
func hasNestedMember(o Object) bool {
	for _, m := range o {
		switch m.Value.(type) {
		case Object, Array:
			return true
		}
	}
	return false
}

func renderKeyValueTable(o Object) string {
	var b strings.Builder
	b.WriteString("| Key | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, m := range o {
		text := nullMarker
		if m.Value != nil {
			text = scalarText(m.Value)
		}
		b.WriteString("| " + m.Key + " | " + text + " |\n")
	}
	return b.String()
}

func renderSections(o Object, depth int) string {
	var b strings.Builder
	for _, m := range o {
		switch m.Value.(type) {
		case Object, Array:
			level := depth + 1
			if level > maxHeadingDepth {
				level = maxHeadingDepth
			}
			b.WriteString(strings.Repeat("#", level) + " " + m.Key + "\n\n")
			b.WriteString(renderValue(m.Value, depth+1))
		default:
			text := nullMarker
			if m.Value != nil {
				text = scalarText(m.Value)
			}
			b.WriteString("- " + m.Key + ": " + text + "\n")
		}
	}
	return b.String()
}

func scalarText(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case string:
		return t
	default:
		return Serialize(t, IndentNone())
	}
}

// indentLines prefixes every non-empty line of block with prefix,
// preserving the trailing newline.
func indentLines(block, prefix string) string {
	lines := strings.Split(block, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			break
		}
		b.WriteString(prefix + line + "\n")
	}
	return b.String()
}
