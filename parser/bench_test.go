package parser_test

import (
	"strings"
	"testing"

	"github.com/bmatsuo/diylisp/parser"
)

func BenchmarkParseProgram(b *testing.B) {
	var buf strings.Builder
	for i := 0; i < 100; i++ {
		buf.WriteString("(defn fact (n) (if (< n 1) 1 (* n (fact (- n 1))))) ; factorial\n")
		buf.WriteString(`(cons "a" (tail "xbc"))` + "\n")
		buf.WriteString("'(1 2 3 #t #f sym)\n")
	}
	src := buf.String()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := parser.ParseProgram(src)
		if err != nil {
			b.Fatal(err)
		}
	}
}
