// Package flagx lets several packages share os.Args: each one picks out
// only the flags it owns before handing them to its own flag.FlagSet.
package flagx

import (
	"flag"
	"strings"
)

// name strips one or two leading dashes: "--config" and "-config" both
// yield "config".
func name(arg string) string {
	return strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
}

func set(flags []string) map[string]struct{} {
	m := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		m[name(f)] = struct{}{}
	}
	return m
}

// FilterArgs returns the arguments of args that belong to allowedFlags,
// in their original order.
//
// Accepted forms are "-f value", "-f=value" and the same with a double
// dash. A value is taken from the next argument only when that argument
// does not start with '-'. Flags listed in boolFlags never take the next
// argument as a value; use "-f=false" to switch them off.
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := set(allowedFlags)
	bools := set(boolFlags)

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if n, _, ok := strings.Cut(arg, "="); ok {
			if _, ok := allowed[name(n)]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		n := name(arg)
		if _, ok := allowed[n]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		if _, ok := bools[n]; ok {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFile returns the JSON config path given with -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigFile(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}
