package mangle

import "strings"

// DefaultPrefix is prepended to every mangled method name.
const DefaultPrefix = "ETS_"

const hexDigits = "0123456789abcdef"

// Mangler builds native symbol names for managed methods. The zero value
// uses DefaultPrefix.
type Mangler struct {
	prefix string
}

// New returns a Mangler with the given method-name prefix. An empty prefix
// selects DefaultPrefix.
func New(prefix string) Mangler {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Mangler{prefix: prefix}
}

// Prefix returns the method-name prefix.
func (m Mangler) Prefix() string {
	if m.prefix == "" {
		return DefaultPrefix
	}
	return m.prefix
}

// MethodName returns the short native name of className.methodName.
// className may be given as a descriptor ("Lstd/core/Object;").
func (m Mangler) MethodName(className, methodName string) string {
	return m.Prefix() + String(StripDescriptor(className)+"."+methodName)
}

// MethodNameWithSignature extends an already mangled method name with its
// signature, producing the long native name used to disambiguate overloads.
func (m Mangler) MethodNameWithSignature(mangledName, signature string) string {
	return mangledName + "__" + String(signature)
}

// MethodName mangles with DefaultPrefix.
func MethodName(className, methodName string) string {
	return Mangler{}.MethodName(className, methodName)
}

// MethodNameWithSignature is Mangler.MethodNameWithSignature for the default mangler.
func MethodNameWithSignature(mangledName, signature string) string {
	return Mangler{}.MethodNameWithSignature(mangledName, signature)
}

// StripDescriptor removes the "L" marker and ";" terminator of a class
// descriptor. Other input is returned unchanged.
func StripDescriptor(className string) string {
	if len(className) >= 2 && className[0] == 'L' && className[len(className)-1] == ';' {
		return className[1 : len(className)-1]
	}
	return className
}

// String mangles an arbitrary identifier.
func String(input string) string {
	var sb strings.Builder
	sb.Grow(len(input))

	for i := 0; i < len(input); {
		cu, n := nextUnits(input, i)
		i += n

		if cu.pair() {
			writeEscape(&sb, cu.lo)
			writeEscape(&sb, cu.hi)
			continue
		}

		c := cu.lo
		switch {
		case c == '.' || c == '/':
			sb.WriteByte('_')
		case c == '_':
			sb.WriteString("_1")
		case c == ';':
			sb.WriteString("_2")
		case c == '[':
			sb.WriteString("_3")
		case isAlnum(c):
			sb.WriteByte(byte(c))
		default:
			writeEscape(&sb, c)
		}
	}

	return sb.String()
}

func isAlnum(c uint16) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func writeEscape(sb *strings.Builder, u uint16) {
	sb.WriteString("_0")
	sb.WriteByte(hexDigits[u>>12&0xF])
	sb.WriteByte(hexDigits[u>>8&0xF])
	sb.WriteByte(hexDigits[u>>4&0xF])
	sb.WriteByte(hexDigits[u&0xF])
}
