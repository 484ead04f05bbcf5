// Copyright © 2025 The javals authors

package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// The core speaks 1-based (line, column); the protocol is 0-based.

func coreLine(p protocol.Position) int {
	return int(p.Line) + 1
}

func coreCol(p protocol.Position) int {
	return int(p.Character) + 1
}

// protocolPosition converts a 1-based core position to protocol form.
func protocolPosition(line, col int) protocol.Position {
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	return protocol.Position{Line: safeUint(line), Character: safeUint(col)}
}

// safeUint clamps negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n)
}

// offsetIn converts a protocol position to a byte offset in content,
// clamping past-the-end positions.
func offsetIn(content string, p protocol.Position) int {
	line := int(p.Line)
	off := 0
	for line > 0 && off < len(content) {
		if content[off] == '\n' {
			line--
		}
		off++
	}
	off += int(p.Character)
	if off > len(content) {
		off = len(content)
	}
	return off
}
