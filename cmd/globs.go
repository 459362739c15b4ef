package cmd

import "strings"

// globArg is one discovery pattern as given on the command line.
type globArg struct {
	flag    string
	pattern string
}

// globList keeps the --vertex, --fragment, --source and --include patterns
// of one command in command-line order. File ids are assigned in
// first-encounter order, so the order sources are added in shows up in
// the output.
type globList struct {
	args []globArg
}

// globValue is the flag value of one discovery flag. All discovery flags
// of a command append to the same globList.
type globValue struct {
	list *globList
	flag string
}

func (v *globValue) Set(pattern string) error {
	v.list.args = append(v.list.args, globArg{flag: v.flag, pattern: pattern})
	return nil
}

func (v *globValue) String() string {
	if v == nil || v.list == nil {
		return ""
	}
	var patterns []string
	for _, a := range v.list.args {
		if a.flag == v.flag {
			patterns = append(patterns, a.pattern)
		}
	}
	return strings.Join(patterns, ", ")
}

func (v *globValue) Get() any { return v.list }
