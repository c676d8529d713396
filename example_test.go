package ngjson_test

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/ngjson/ngjson"
)

// ExampleUnmarshal shows attaching a tint-backed slog.Logger to see
// debug-level diagnostics from a parse (each partial-parse acceptance at
// EOF). Logging is entirely optional instrumentation; a nil Logger (the
// zero value) never logs.
func ExampleUnmarshal() {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{NoColor: true}))

	v, err := ngjson.UnmarshalString(`{"ok": true}`, ngjson.DecodeOptions{Logger: logger})
	if err != nil {
		fmt.Println(err)
		return
	}
	b, _ := v.Key("ok").AsBool()
	fmt.Println(b)
	// Output: true
}

func ExampleValue_Pipe() {
	v, _ := ngjson.UnmarshalString(`{"items": ["a", "b", "c"]}`, ngjson.DecodeOptions{})
	got, err := v.Pipe(ngjson.Get("items"), ngjson.Index(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	s, _ := got.AsString()
	fmt.Println(strings.ToUpper(s))
	// Output: B
}
