// Copyright © 2025 The javals authors

package complete

// Keyword sets offered by position, in the reference order.

var topLevelKeywords = []string{
	"package",
	"import",
	"public",
	"private",
	"protected",
	"abstract",
	"class",
	"interface",
	"extends",
	"implements",
}

var classBodyKeywords = []string{
	"public",
	"private",
	"protected",
	"static",
	"final",
	"native",
	"synchronized",
	"abstract",
	"default",
	"class",
	"interface",
	"void",
	"boolean",
	"int",
	"long",
	"float",
	"double",
}

var methodBodyKeywords = []string{
	"new",
	"assert",
	"try",
	"catch",
	"finally",
	"throw",
	"return",
	"break",
	"case",
	"continue",
	"default",
	"do",
	"while",
	"for",
	"switch",
	"if",
	"else",
	"instanceof",
	"var",
	"final",
	"class",
	"void",
	"boolean",
	"int",
	"long",
	"float",
	"double",
}
