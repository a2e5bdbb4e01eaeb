package extract

import (
	"sort"
	"strings"
)

// ParseImports extracts the top-level module names imported by Python
// source text. Both "import a.b as c" and "from x.y import z" forms are
// recognized; relative imports carry no module name and are skipped.
// The result is sorted and de-duplicated.
func ParseImports(text string) []string {
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "import "):
			rest := strings.TrimPrefix(line, "import ")
			if i := strings.Index(rest, "#"); i >= 0 {
				rest = rest[:i]
			}
			for _, part := range strings.Split(rest, ",") {
				if name := topLevelModule(part); name != "" {
					seen[name] = struct{}{}
				}
			}
		case strings.HasPrefix(line, "from "):
			rest := strings.TrimPrefix(line, "from ")
			fields := strings.Fields(rest)
			if len(fields) < 2 || fields[1] != "import" {
				continue
			}
			if name := topLevelModule(fields[0]); name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// topLevelModule reduces one import target to its top-level module name.
// Relative imports (leading dot) yield "".
func topLevelModule(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || target[0] == '.' {
		return ""
	}
	if i := strings.Index(target, " as "); i >= 0 {
		target = target[:i]
	}
	target = strings.TrimSpace(target)
	if i := strings.IndexByte(target, '.'); i >= 0 {
		target = target[:i]
	}
	for i := 0; i < len(target); i++ {
		c := target[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return ""
	}
	return target
}

// IsStdlib reports whether name is a Python standard-library module that
// never needs declaring as a dependency.
func IsStdlib(name string) bool {
	_, ok := pythonStdlib[name]
	return ok
}

// Common Python standard-library top-level modules.
var pythonStdlib = map[string]struct{}{
	"abc": {}, "argparse": {}, "ast": {}, "asyncio": {}, "base64": {},
	"bisect": {}, "builtins": {}, "calendar": {}, "collections": {},
	"concurrent": {}, "configparser": {}, "contextlib": {}, "copy": {},
	"csv": {}, "ctypes": {}, "dataclasses": {}, "datetime": {},
	"decimal": {}, "difflib": {}, "dis": {}, "email": {}, "enum": {},
	"errno": {}, "fnmatch": {}, "functools": {}, "gc": {}, "getpass": {},
	"glob": {}, "gzip": {}, "hashlib": {}, "heapq": {}, "hmac": {},
	"html": {}, "http": {}, "importlib": {}, "inspect": {}, "io": {},
	"itertools": {}, "json": {}, "logging": {}, "math": {},
	"multiprocessing": {}, "numbers": {}, "operator": {}, "os": {},
	"pathlib": {}, "pickle": {}, "platform": {}, "pprint": {},
	"queue": {}, "random": {}, "re": {}, "secrets": {}, "select": {},
	"shlex": {}, "shutil": {}, "signal": {}, "site": {}, "socket": {},
	"sqlite3": {}, "ssl": {}, "stat": {}, "statistics": {}, "string": {},
	"struct": {}, "subprocess": {}, "sys": {}, "sysconfig": {},
	"tempfile": {}, "textwrap": {}, "threading": {}, "time": {},
	"tomllib": {}, "traceback": {}, "types": {}, "typing": {},
	"unicodedata": {}, "unittest": {}, "urllib": {}, "uuid": {},
	"venv": {}, "warnings": {}, "weakref": {}, "xml": {}, "zipfile": {},
	"zlib": {},
}
