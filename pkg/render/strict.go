package render

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"unicode"
)

// UndefinedError reports a variable missing from the render context
type UndefinedError struct {
	Name string
	Line int
	// File is set when the reference sits in an included template
	File string
}

func (e *UndefinedError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("undefined variable %q at line %d of %s", e.Name, e.Line, e.File)
	}
	return fmt.Sprintf("undefined variable %q at line %d", e.Name, e.Line)
}

var (
	tagPattern   = regexp.MustCompile(`(?s)\{\{-?(.*?)-?\}\}|\{%-?(.*?)-?%\}|\{#.*?#\}`)
	macroPattern = regexp.MustCompile(`^macro\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)`)
)

// keywords are identifiers that never name a variable
var keywords = map[string]bool{
	"true": true, "false": true, "True": true, "False": true,
	"nil": true, "none": true, "None": true,
	"not": true, "and": true, "or": true, "in": true,
}

// guards are the filters that make an undefined operand acceptable
var guards = map[string]bool{"default": true, "default_if_none": true}

type scope struct {
	closer string
	names  map[string]bool
}

// checker tracks names bound by the template itself while scanning tags in
// document order. Every identifier of an expression is checked except
// attribute segments, filter names and operands guarded by |default.
// Literal {% include %} paths are followed through templates.
type checker struct {
	ctx       map[string]any
	templates fs.FS
	file      string
	content   string
	globals   map[string]bool
	scopes    []scope
	visiting  map[string]bool
}

func checkDefined(content string, ctx map[string]any) error {
	return checkTemplate(content, ctx, nil)
}

func checkTemplate(content string, ctx map[string]any, templates fs.FS) error {
	c := &checker{
		ctx:       ctx,
		templates: templates,
		globals:   map[string]bool{},
		visiting:  map[string]bool{},
	}
	return c.check(content)
}

func (c *checker) check(content string) error {
	c.content = content

	verbatim := false
	for _, loc := range tagPattern.FindAllStringSubmatchIndex(content, -1) {
		start := loc[0]
		switch {
		case loc[2] >= 0:
			if verbatim {
				continue
			}
			if err := c.expr(content[loc[2]:loc[3]], start); err != nil {
				return err
			}
		case loc[4] >= 0:
			body := strings.TrimSpace(content[loc[4]:loc[5]])
			fields := strings.Fields(body)
			if len(fields) == 0 {
				continue
			}
			if verbatim {
				verbatim = fields[0] != "endverbatim"
				continue
			}
			if fields[0] == "verbatim" {
				verbatim = true
				continue
			}
			if err := c.tag(body, fields, start); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) tag(body string, fields []string, offset int) error {
	rest := strings.TrimSpace(strings.TrimPrefix(body, fields[0]))

	switch fields[0] {
	case "if", "elif", "ifequal", "ifnotequal":
		return c.expr(rest, offset)

	case "for":
		in := -1
		for i, f := range fields {
			if f == "in" {
				in = i
				break
			}
		}
		if in < 2 || in+1 >= len(fields) {
			return nil
		}
		source := fields[in+1:]
		for len(source) > 1 && (source[len(source)-1] == "reversed" || source[len(source)-1] == "sorted") {
			source = source[:len(source)-1]
		}
		if err := c.expr(strings.Join(source, " "), offset); err != nil {
			return err
		}
		names := map[string]bool{"forloop": true}
		for _, v := range strings.Split(strings.Join(fields[1:in], ""), ",") {
			names[v] = true
		}
		c.push("endfor", names)

	case "with":
		names := map[string]bool{}
		if len(fields) == 4 && fields[2] == "as" {
			if err := c.expr(fields[1], offset); err != nil {
				return err
			}
			names[fields[3]] = true
		} else {
			bound, err := c.assignments(fields[1:], offset)
			if err != nil {
				return err
			}
			names = bound
		}
		c.push("endwith", names)

	case "set":
		name, value, ok := strings.Cut(rest, "=")
		if !ok {
			return nil
		}
		if err := c.expr(value, offset); err != nil {
			return err
		}
		c.bind(strings.TrimSpace(name))

	case "macro":
		m := macroPattern.FindStringSubmatch(body)
		if m == nil {
			return nil
		}
		c.globals[m[1]] = true
		names := map[string]bool{}
		for _, arg := range strings.Split(m[2], ",") {
			name, _, _ := strings.Cut(arg, "=")
			if name = strings.TrimSpace(name); name != "" {
				names[name] = true
			}
		}
		c.push("endmacro", names)

	case "import":
		// {% import "macros.txt" name, other as alias %}
		toks := lex(rest)
		for i, t := range toks {
			if t.kind != tokIdent || t.text == "as" {
				continue
			}
			if i+1 < len(toks) && toks[i+1].text == "as" {
				continue
			}
			c.globals[t.text] = true
		}

	case "include":
		return c.include(fields[1:], offset)

	case "endfor", "endwith", "endmacro":
		c.pop(fields[0])
	}
	return nil
}

// assignments checks the values of name=value pairs and returns the names
func (c *checker) assignments(pairs []string, offset int) (map[string]bool, error) {
	names := map[string]bool{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if err := c.expr(value, offset); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, nil
}

// include checks the with-values of an include tag, then the included
// template itself under the current bindings. Paths that are not string
// literals, or that cannot be read, are left to pongo2.
func (c *checker) include(args []string, offset int) error {
	if len(args) == 0 {
		return nil
	}
	rest := args[1:]
	only := false
	var pairs []string
	for i, arg := range rest {
		switch arg {
		case "only":
			only = true
		case "with":
			pairs = rest[i+1:]
		}
	}
	for i, p := range pairs {
		if p == "only" {
			pairs = pairs[:i]
			break
		}
	}
	names, err := c.assignments(pairs, offset)
	if err != nil {
		return err
	}

	toks := lex(args[0])
	if len(toks) != 1 || toks[0].kind != tokString {
		return c.expr(args[0], offset)
	}
	path := unquote(toks[0].text)
	if c.templates == nil || c.visiting[path] {
		return nil
	}
	data, err := fs.ReadFile(c.templates, path)
	if err != nil {
		return nil
	}

	sub := &checker{
		ctx:       c.ctx,
		templates: c.templates,
		file:      path,
		globals:   map[string]bool{},
		visiting:  c.visiting,
	}
	if only {
		sub.ctx = nil
	} else {
		for name := range c.globals {
			sub.globals[name] = true
		}
		sub.scopes = append(sub.scopes, c.scopes...)
	}
	sub.push("", names)

	c.visiting[path] = true
	defer delete(c.visiting, path)
	return sub.check(string(data))
}

func (c *checker) expr(expr string, offset int) error {
	toks := lex(expr)
	for i, t := range toks {
		if t.kind != tokIdent || keywords[t.text] {
			continue
		}
		// attribute segment or filter name
		if i > 0 && (toks[i-1].text == "." || toks[i-1].text == "|") {
			continue
		}
		if c.defined(t.text) || guarded(toks, i) {
			continue
		}
		return &UndefinedError{
			Name: t.text,
			Line: strings.Count(c.content[:offset], "\n") + 1,
			File: c.file,
		}
	}
	return nil
}

// guarded reports whether the operand starting at toks[i] is followed by a
// default filter before the operand ends. Filter arguments take no filters
// of their own, so they are never guarded.
func guarded(toks []token, i int) bool {
	if i > 0 && toks[i-1].text == ":" {
		return false
	}
	j := i + 1
	for j < len(toks) {
		switch toks[j].text {
		case ".":
			j += 2
		case "[", "(":
			j = skipGroup(toks, j)
		case "|":
			if j+1 >= len(toks) {
				return false
			}
			if guards[toks[j+1].text] {
				return true
			}
			j += 2
			if j < len(toks) && toks[j].text == ":" {
				// the argument and its attribute chain
				j += 2
				for j+1 < len(toks) && toks[j].text == "." {
					j += 2
				}
			}
		default:
			return false
		}
	}
	return false
}

// skipGroup returns the index after the bracket closing the one at toks[j]
func skipGroup(toks []token, j int) int {
	depth := 0
	for ; j < len(toks); j++ {
		switch toks[j].text {
		case "[", "(":
			depth++
		case "]", ")":
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return j
}

func (c *checker) defined(name string) bool {
	if _, ok := c.ctx[name]; ok {
		return true
	}
	if c.globals[name] {
		return true
	}
	for _, s := range c.scopes {
		if s.names[name] {
			return true
		}
	}
	return false
}

func (c *checker) push(closer string, names map[string]bool) {
	c.scopes = append(c.scopes, scope{closer: closer, names: names})
}

// pop closes the innermost scope opened for closer
func (c *checker) pop(closer string) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i].closer == closer {
			c.scopes = c.scopes[:i]
			return
		}
	}
}

func (c *checker) bind(name string) {
	if len(c.scopes) == 0 {
		c.globals[name] = true
		return
	}
	c.scopes[len(c.scopes)-1].names[name] = true
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokSymbol
)

type token struct {
	kind tokenKind
	text string
}

// lex splits a pongo2 expression into identifiers, literals and symbols
func lex(expr string) []token {
	var toks []token
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '"' || r == '\'':
			j := i + 1
			for j < len(runes) && runes[j] != r {
				if runes[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(runes) {
				j++
			}
			toks = append(toks, token{tokString, string(runes[i:j])})
			i = j

		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j

		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(runes) && (runes[j] == '_' || unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j

		default:
			j := i + 1
			if j < len(runes) {
				switch string(runes[i : j+1]) {
				case "==", "!=", "<=", ">=", "<>", "&&", "||":
					j++
				}
			}
			toks = append(toks, token{tokSymbol, string(runes[i:j])})
			i = j
		}
	}
	return toks
}

func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\\`, `\`).Replace(s)
}
