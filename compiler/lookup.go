package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
)

// GenerateLookup returns gofmt'd Go source declaring, in package pkg,
//
//	func FileName(id uint32) (string, bool)
//
// which maps a #line file id to its include name. names[i] has id i+1.
// Any other id, including 0 for the top-level source, yields ("", false).
func GenerateLookup(pkg string, names []string) ([]byte, error) {
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	var b bytes.Buffer
	b.WriteString("// Code generated by glossy. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("// FileName returns the include file name for a #line file id.\n")
	b.WriteString("func FileName(id uint32) (string, bool) {\n")
	b.WriteString("switch id {\n")
	for i, name := range names {
		fmt.Fprintf(&b, "case %d:\nreturn %s, true\n", i+1, strconv.Quote(name))
	}
	b.WriteString("}\n")
	b.WriteString("return \"\", false\n")
	b.WriteString("}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting lookup source: %w", err)
	}
	return src, nil
}
