package ast

// Kind discriminates node types. There is one Kind per production.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindIdentifier
	KindInteger
	KindChar
	KindString
	KindSpread
	KindList
	KindMap
	KindMapEntry
	KindObject
	KindObjectField
	KindBlock
	KindFunction
	KindParameter
	KindParameterList
	KindArgumentList
	KindCall
	KindEscapedExpression
	KindInterval
	KindSubInterval
	KindIntervalElement
	KindUnicodeInterval
	KindUnicodeElement
	KindCodePoint
	KindBitlist
	KindBitlistElement
)

var kindNames = [...]string{
	KindInvalid:           "Invalid",
	KindIdentifier:        "Identifier",
	KindInteger:           "Integer",
	KindChar:              "Char",
	KindString:            "String",
	KindSpread:            "Spread",
	KindList:              "List",
	KindMap:               "Map",
	KindMapEntry:          "MapEntry",
	KindObject:            "Object",
	KindObjectField:       "ObjectField",
	KindBlock:             "Block",
	KindFunction:          "Function",
	KindParameter:         "Parameter",
	KindParameterList:     "ParameterList",
	KindArgumentList:      "ArgumentList",
	KindCall:              "Call",
	KindEscapedExpression: "EscapedExpression",
	KindInterval:          "Interval",
	KindSubInterval:       "SubInterval",
	KindIntervalElement:   "IntervalElement",
	KindUnicodeInterval:   "UnicodeInterval",
	KindUnicodeElement:    "UnicodeElement",
	KindCodePoint:         "CodePoint",
	KindBitlist:           "Bitlist",
	KindBitlistElement:    "BitlistElement",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}
