package token

var keywords = map[string]struct{}{
	"abstract": {}, "as": {}, "base": {}, "bool": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "checked": {}, "class": {}, "const": {},
	"continue": {}, "decimal": {}, "default": {}, "delegate": {}, "do": {},
	"double": {}, "else": {}, "enum": {}, "event": {}, "explicit": {},
	"extern": {}, "false": {}, "finally": {}, "fixed": {}, "float": {}, "for": {},
	"foreach": {}, "goto": {}, "if": {}, "implicit": {}, "in": {}, "int": {},
	"interface": {}, "internal": {}, "is": {}, "lock": {}, "long": {},
	"namespace": {}, "new": {}, "null": {}, "object": {}, "operator": {},
	"out": {}, "override": {}, "params": {}, "private": {}, "protected": {},
	"public": {}, "readonly": {}, "ref": {}, "return": {}, "sbyte": {},
	"sealed": {}, "short": {}, "sizeof": {}, "stackalloc": {}, "static": {},
	"string": {}, "struct": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "uint": {}, "ulong": {}, "unchecked": {},
	"unsafe": {}, "ushort": {}, "using": {}, "virtual": {}, "void": {},
	"volatile": {}, "while": {},
}

// IsKeyword reports whether text is a reserved C# keyword.
// Keywords are case-sensitive.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}

var modifiers = map[string]struct{}{
	"public": {}, "private": {}, "protected": {}, "internal": {}, "static": {},
	"abstract": {}, "sealed": {}, "virtual": {}, "override": {}, "readonly": {},
	"extern": {}, "unsafe": {}, "new": {}, "volatile": {}, "const": {},
	"async": {}, "partial": {}, "required": {}, "file": {},
}

// IsModifier reports whether text can appear in a declaration modifier list.
// Contextual modifiers (async, partial, required, file) are included.
func IsModifier(text string) bool {
	_, ok := modifiers[text]
	return ok
}
