// Package flagx lets several components parse their own flags out of one
// shared argument list without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns only the arguments that belong to allowedFlags, keeping
// their values. Both "-d dsn" and "-d=dsn" forms are recognised; a value is
// taken from the next argument only when it does not itself start with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	return FilterArgsBool(args, allowedFlags, nil)
}

// FilterArgsBool is FilterArgs for a set that includes boolean flags. The
// flag package only accepts "-seed=false", so a boolean flag followed by a
// separate "true" or "false" is rewritten into that form. Any other next
// argument is not consumed.
func FilterArgsBool(args []string, allowedFlags []string, boolFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}
	isBool := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		isBool[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}

		if _, ok := isBool[arg]; ok {
			if i+1 < len(args) && (args[i+1] == "true" || args[i+1] == "false") {
				filtered = append(filtered, arg+"="+args[i+1])
				i++
			} else {
				filtered = append(filtered, arg)
			}
			continue
		}

		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JSONConfigPath extracts the config file path given with -c or -config.
// It returns "" when neither flag is present.
func JSONConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
