package preprocess

import (
	"fmt"
	"strings"
	"testing"
)

func longSource(lines int) string {
	var sb strings.Builder
	sb.WriteString("#version 120\n")
	for i := 0; i < lines; i++ {
		switch i % 4 {
		case 0:
			fmt.Fprintf(&sb, "float v%d = %d.0; // value\n", i, i)
		case 1:
			sb.WriteString("/* a block\n")
		case 2:
			sb.WriteString("   comment */\n")
		case 3:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func BenchmarkProcessLongSource(b *testing.B) {
	src := longSource(4000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := &Processor{}
		if _, err := p.Process("long.vert", src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProcessDeepIncludes(b *testing.B) {
	includes := IncludeTable{}
	for i := 0; i < 64; i++ {
		includes[fmt.Sprintf("f%d.glsl", i)] = fmt.Sprintf("float f%d;\n#include \"f%d.glsl\"\n", i, i+1)
	}
	includes["f64.glsl"] = "float last;"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := &Processor{Includes: includes}
		if _, err := p.Process("deep.vert", "#include \"f0.glsl\"\nvoid main() {}"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProcessDiscard(b *testing.B) {
	src := longSource(4000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := &Processor{DiscardLineInfo: true}
		if _, err := p.Process("long.vert", src); err != nil {
			b.Fatal(err)
		}
	}
}
