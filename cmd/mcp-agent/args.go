package main

import "strings"

// multiValueFlags accept several values after one occurrence, e.g. "-t a.md b.md"
var multiValueFlags = map[string]bool{
	"-r": true, "--rag": true,
	"-m": true, "--mcp": true,
	"-t": true, "--tasklist": true,
}

// expandMultiValueArgs rewrites "-t a b" into "-t a -t b". Bare values that
// follow the first value of a multi-value flag are attached to that flag until
// the next flag or "--".
func expandMultiValueArgs(args []string) []string {
	out := make([]string, 0, len(args))
	current := ""
	awaitingFirst := false

	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}

		if strings.HasPrefix(arg, "-") && arg != "-" {
			name, _, hasValue := strings.Cut(arg, "=")
			current = ""
			if multiValueFlags[name] {
				current = name
				awaitingFirst = !hasValue
			}
			out = append(out, arg)
			continue
		}

		if current != "" && !awaitingFirst {
			out = append(out, current)
		}
		awaitingFirst = false
		out = append(out, arg)
	}
	return out
}
