package mocks

import "strings"

// Renderer is a mock implementation of ports.PlainTextRenderer that strips
// markdown emphasis markers and heading hashes.
type Renderer struct {
	CallCount int
}

// PlainText removes '*', '_' and leading '#' characters.
func (m *Renderer) PlainText(markdown string) string {
	m.CallCount++
	replacer := strings.NewReplacer("*", "", "_", "")
	lines := strings.Split(replacer.Replace(markdown), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, "# ")
	}
	return strings.Join(lines, "\n")
}
