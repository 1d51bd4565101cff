package token

import "strings"

type Kind int

const (
	Unknown Kind = iota
	EOF

	// Literals
	Identifier
	IntLiteral
	FloatLiteral
	CharLiteral
	StringLiteral

	// Keywords
	Abstract
	As
	Assert
	Auto
	Boolean
	Break
	Byte
	Case
	Catch
	Char
	Class
	Constructor
	Continue
	Default
	Do
	Double
	Else
	Enum
	Extends
	False
	Final
	Finally
	Float
	For
	If
	Implements
	Import
	Int
	Interface
	Isa
	Long
	Native
	New
	Null
	Package
	Private
	Protected
	Public
	Return
	Self
	Shared
	Short
	Strictfp
	Super
	Switch
	Synchronized
	Throw
	Throws
	Transient
	True
	Try
	Void
	Volatile
	While
	Yield

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	DotDot
	Ellipsis
	At
	ColonColon
	Colon
	Question
	Arrow

	// Operators
	Assign
	EQ
	NE
	LT
	LE
	Spaceship
	Subtype
	Shl
	ShlAssign
	GT
	GE
	Shr
	ShrAssign
	UShr
	UShrAssign
	And
	Or
	Not
	BitAnd
	BitOr
	BitXor
	BitNot
	Plus
	Minus
	Star
	Slash
	Percent
	Increment
	Decrement
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AndAssign
	OrAssign
	XorAssign

	kindCount
)

// Category is a set of syntactic roles a token kind can play. Parser
// predicates are derived from these declarations.
type Category uint16

const (
	Literal Category = 1 << iota
	Keyword
	PrimitiveType
	AccessModifier
	GeneralModifier
	AssignOp
	UnaryOp
	PrimaryStart
	Operator
)

type kindInfo struct {
	text string
	cat  Category
}

var kinds = [kindCount]kindInfo{
	Unknown: {"Unknown", 0},
	EOF:     {"EOF", 0},

	Identifier:    {"Identifier", PrimaryStart},
	IntLiteral:    {"IntLiteral", Literal | PrimaryStart},
	FloatLiteral:  {"FloatLiteral", Literal | PrimaryStart},
	CharLiteral:   {"CharLiteral", Literal | PrimaryStart},
	StringLiteral: {"StringLiteral", Literal | PrimaryStart},

	Abstract:     {"abstract", Keyword | GeneralModifier},
	As:           {"as", Keyword},
	Assert:       {"assert", Keyword},
	Auto:         {"auto", Keyword},
	Boolean:      {"boolean", Keyword | PrimitiveType | PrimaryStart},
	Break:        {"break", Keyword},
	Byte:         {"byte", Keyword | PrimitiveType | PrimaryStart},
	Case:         {"case", Keyword},
	Catch:        {"catch", Keyword},
	Char:         {"char", Keyword | PrimitiveType | PrimaryStart},
	Class:        {"class", Keyword},
	Constructor:  {"constructor", Keyword},
	Continue:     {"continue", Keyword},
	Default:      {"default", Keyword | GeneralModifier},
	Do:           {"do", Keyword},
	Double:       {"double", Keyword | PrimitiveType | PrimaryStart},
	Else:         {"else", Keyword},
	Enum:         {"enum", Keyword},
	Extends:      {"extends", Keyword},
	False:        {"false", Keyword | Literal | PrimaryStart},
	Final:        {"final", Keyword | GeneralModifier},
	Finally:      {"finally", Keyword},
	Float:        {"float", Keyword | PrimitiveType | PrimaryStart},
	For:          {"for", Keyword},
	If:           {"if", Keyword},
	Implements:   {"implements", Keyword},
	Import:       {"import", Keyword},
	Int:          {"int", Keyword | PrimitiveType | PrimaryStart},
	Interface:    {"interface", Keyword},
	Isa:          {"isa", Keyword},
	Long:         {"long", Keyword | PrimitiveType | PrimaryStart},
	Native:       {"native", Keyword | GeneralModifier},
	New:          {"new", Keyword | PrimaryStart},
	Null:         {"null", Keyword | Literal | PrimaryStart},
	Package:      {"package", Keyword},
	Private:      {"private", Keyword | AccessModifier},
	Protected:    {"protected", Keyword | AccessModifier},
	Public:       {"public", Keyword | AccessModifier},
	Return:       {"return", Keyword},
	Self:         {"self", Keyword | PrimaryStart},
	Shared:       {"shared", Keyword | GeneralModifier},
	Short:        {"short", Keyword | PrimitiveType | PrimaryStart},
	Strictfp:     {"strictfp", Keyword | GeneralModifier},
	Super:        {"super", Keyword | PrimaryStart},
	Switch:       {"switch", Keyword | PrimaryStart},
	Synchronized: {"synchronized", Keyword | GeneralModifier},
	Throw:        {"throw", Keyword},
	Throws:       {"throws", Keyword},
	Transient:    {"transient", Keyword | GeneralModifier},
	True:         {"true", Keyword | Literal | PrimaryStart},
	Try:          {"try", Keyword},
	Void:         {"void", Keyword | PrimaryStart},
	Volatile:     {"volatile", Keyword | GeneralModifier},
	While:        {"while", Keyword},
	Yield:        {"yield", Keyword},

	LParen:     {"(", PrimaryStart},
	RParen:     {")", 0},
	LBrace:     {"{", 0},
	RBrace:     {"}", 0},
	LBracket:   {"[", 0},
	RBracket:   {"]", 0},
	Semicolon:  {";", 0},
	Comma:      {",", 0},
	Dot:        {".", 0},
	DotDot:     {"..", Operator},
	Ellipsis:   {"...", 0},
	At:         {"@", 0},
	ColonColon: {"::", 0},
	Colon:      {":", 0},
	Question:   {"?", Operator},
	Arrow:      {"->", 0},

	Assign:        {"=", Operator | AssignOp},
	EQ:            {"==", Operator},
	NE:            {"!=", Operator},
	LT:            {"<", Operator},
	LE:            {"<=", Operator},
	Spaceship:     {"<=>", Operator},
	Subtype:       {"<:", Operator},
	Shl:           {"<<", Operator},
	ShlAssign:     {"<<=", Operator | AssignOp},
	GT:            {">", Operator},
	GE:            {">=", Operator},
	Shr:           {">>", Operator},
	ShrAssign:     {">>=", Operator | AssignOp},
	UShr:          {">>>", Operator},
	UShrAssign:    {">>>=", Operator | AssignOp},
	And:           {"&&", Operator},
	Or:            {"||", Operator},
	Not:           {"!", Operator | UnaryOp},
	BitAnd:        {"&", Operator},
	BitOr:         {"|", Operator},
	BitXor:        {"^", Operator},
	BitNot:        {"~", Operator | UnaryOp},
	Plus:          {"+", Operator | UnaryOp},
	Minus:         {"-", Operator | UnaryOp},
	Star:          {"*", Operator},
	Slash:         {"/", Operator},
	Percent:       {"%", Operator},
	Increment:     {"++", Operator | UnaryOp},
	Decrement:     {"--", Operator | UnaryOp},
	PlusAssign:    {"+=", Operator | AssignOp},
	MinusAssign:   {"-=", Operator | AssignOp},
	StarAssign:    {"*=", Operator | AssignOp},
	SlashAssign:   {"/=", Operator | AssignOp},
	PercentAssign: {"%=", Operator | AssignOp},
	AndAssign:     {"&=", Operator | AssignOp},
	OrAssign:      {"|=", Operator | AssignOp},
	XorAssign:     {"^=", Operator | AssignOp},
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := Kind(0); k < kindCount; k++ {
		if kinds[k].cat&Keyword != 0 {
			m[kinds[k].text] = k
		}
	}
	return m
}()

var operators = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := LParen; k < kindCount; k++ {
		m[kinds[k].text] = k
	}
	return m
}()

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kinds[k].text
	}
	return "Unknown"
}

// Is reports whether k belongs to any of the categories in c.
func (k Kind) Is(c Category) bool {
	if k < 0 || k >= kindCount {
		return false
	}
	return kinds[k].cat&c != 0
}

// IsExpressionStart reports whether a token of kind k can begin an expression.
func (k Kind) IsExpressionStart() bool {
	return k.Is(PrimaryStart | UnaryOp)
}

// LookupKeyword returns the keyword kind for ident, or Identifier.
func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// LookupOperator returns the punctuation or operator kind spelled op, or
// Unknown.
func LookupOperator(op string) Kind {
	if kind, ok := operators[op]; ok {
		return kind
	}
	return Unknown
}

// Kinds returns every kind in the given categories, in declaration order.
func Kinds(c Category) []Kind {
	var result []Kind
	for k := Kind(0); k < kindCount; k++ {
		if kinds[k].cat&c != 0 {
			result = append(result, k)
		}
	}
	return result
}

// Set is an immutable set of token kinds.
type Set struct {
	bits [(int(kindCount) + 63) / 64]uint64
}

func NewSet(members ...Kind) Set {
	var s Set
	for _, k := range members {
		s.bits[k/64] |= 1 << (uint(k) % 64)
	}
	return s
}

func (s Set) Has(k Kind) bool {
	if k < 0 || k >= kindCount {
		return false
	}
	return s.bits[k/64]&(1<<(uint(k)%64)) != 0
}

// Members returns the kinds in s in declaration order.
func (s Set) Members() []Kind {
	var result []Kind
	for k := Kind(0); k < kindCount; k++ {
		if s.Has(k) {
			result = append(result, k)
		}
	}
	return result
}

// Describe renders the set as "a, b, or c" for diagnostics.
func (s Set) Describe() string {
	members := s.Members()
	names := make([]string, len(members))
	for i, k := range members {
		names[i] = k.String()
	}
	return JoinOr(names)
}

// JoinOr joins words as an English alternative list.
func JoinOr(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	case 2:
		return words[0] + " or " + words[1]
	}
	return strings.Join(words[:len(words)-1], ", ") + ", or " + words[len(words)-1]
}
