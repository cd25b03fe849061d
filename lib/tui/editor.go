// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextEditor is a minimal multi-line text editor with cursor tracking,
// rendered inline inside a pane. It covers exactly what the reply body
// needs: insertion, deletion, line splitting and merging, and arrow
// navigation.
type TextEditor struct {
	lines   [][]rune // Each line is a slice of runes.
	cursorY int      // Current line index.
	cursorX int      // Cursor position within the current line.
}

// NewTextEditor creates an editor prefilled with the given text. The
// cursor starts at the end of the content.
func NewTextEditor(initial string) TextEditor {
	editor := TextEditor{lines: [][]rune{{}}}
	editor.SetValue(initial)
	return editor
}

// Value returns the current text content.
func (editor TextEditor) Value() string {
	var parts []string
	for _, line := range editor.lines {
		parts = append(parts, string(line))
	}
	return strings.Join(parts, "\n")
}

// SetValue replaces the content and moves the cursor to the end.
func (editor *TextEditor) SetValue(text string) {
	parts := strings.Split(text, "\n")
	editor.lines = make([][]rune, len(parts))
	for i, part := range parts {
		editor.lines[i] = []rune(part)
	}
	editor.cursorY = len(editor.lines) - 1
	editor.cursorX = len(editor.lines[editor.cursorY])
}

// LineCount returns the number of lines in the editor.
func (editor TextEditor) LineCount() int {
	return len(editor.lines)
}

// CursorLine returns the line index the cursor is on, for scroll
// tracking.
func (editor TextEditor) CursorLine() int {
	return editor.cursorY
}

// Update processes a key message.
func (editor *TextEditor) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			editor.insertRune(character)
		}

	case tea.KeyEnter:
		// Split the current line at the cursor.
		line := editor.lines[editor.cursorY]
		before := make([]rune, editor.cursorX)
		copy(before, line[:editor.cursorX])
		after := make([]rune, len(line)-editor.cursorX)
		copy(after, line[editor.cursorX:])

		editor.lines[editor.cursorY] = before
		newLines := make([][]rune, len(editor.lines)+1)
		copy(newLines, editor.lines[:editor.cursorY+1])
		newLines[editor.cursorY+1] = after
		copy(newLines[editor.cursorY+2:], editor.lines[editor.cursorY+1:])
		editor.lines = newLines
		editor.cursorY++
		editor.cursorX = 0

	case tea.KeyBackspace:
		if editor.cursorX > 0 {
			line := editor.lines[editor.cursorY]
			editor.lines[editor.cursorY] = append(line[:editor.cursorX-1], line[editor.cursorX:]...)
			editor.cursorX--
		} else if editor.cursorY > 0 {
			// Merge with previous line.
			previousLine := editor.lines[editor.cursorY-1]
			currentLine := editor.lines[editor.cursorY]
			editor.cursorX = len(previousLine)
			editor.lines[editor.cursorY-1] = append(previousLine, currentLine...)
			editor.lines = append(editor.lines[:editor.cursorY], editor.lines[editor.cursorY+1:]...)
			editor.cursorY--
		}

	case tea.KeyDelete:
		line := editor.lines[editor.cursorY]
		if editor.cursorX < len(line) {
			editor.lines[editor.cursorY] = append(line[:editor.cursorX], line[editor.cursorX+1:]...)
		} else if editor.cursorY < len(editor.lines)-1 {
			// Merge with next line.
			nextLine := editor.lines[editor.cursorY+1]
			editor.lines[editor.cursorY] = append(line, nextLine...)
			editor.lines = append(editor.lines[:editor.cursorY+1], editor.lines[editor.cursorY+2:]...)
		}

	case tea.KeyLeft:
		if editor.cursorX > 0 {
			editor.cursorX--
		} else if editor.cursorY > 0 {
			editor.cursorY--
			editor.cursorX = len(editor.lines[editor.cursorY])
		}

	case tea.KeyRight:
		line := editor.lines[editor.cursorY]
		if editor.cursorX < len(line) {
			editor.cursorX++
		} else if editor.cursorY < len(editor.lines)-1 {
			editor.cursorY++
			editor.cursorX = 0
		}

	case tea.KeyUp:
		if editor.cursorY > 0 {
			editor.cursorY--
			if editor.cursorX > len(editor.lines[editor.cursorY]) {
				editor.cursorX = len(editor.lines[editor.cursorY])
			}
		}

	case tea.KeyDown:
		if editor.cursorY < len(editor.lines)-1 {
			editor.cursorY++
			if editor.cursorX > len(editor.lines[editor.cursorY]) {
				editor.cursorX = len(editor.lines[editor.cursorY])
			}
		}

	case tea.KeyHome, tea.KeyCtrlA:
		editor.cursorX = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		editor.cursorX = len(editor.lines[editor.cursorY])
	}
}

// insertRune inserts a single rune at the cursor position.
func (editor *TextEditor) insertRune(character rune) {
	line := editor.lines[editor.cursorY]
	newLine := make([]rune, len(line)+1)
	copy(newLine, line[:editor.cursorX])
	newLine[editor.cursorX] = character
	copy(newLine[editor.cursorX+1:], line[editor.cursorX:])
	editor.lines[editor.cursorY] = newLine
	editor.cursorX++
}

// RenderLines renders up to height content lines of the editor at the
// given width, scrolling so the cursor stays visible. When showCursor
// is set, the cursor cell is rendered reversed.
func (editor TextEditor) RenderLines(theme Theme, width, height int, showCursor bool) []string {
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	scrollOffset := 0
	if editor.cursorY >= height {
		scrollOffset = editor.cursorY - height + 1
	}

	var rendered []string
	for lineIndex := scrollOffset; lineIndex < scrollOffset+height; lineIndex++ {
		var line string
		if lineIndex < len(editor.lines) {
			runes := editor.lines[lineIndex]
			if showCursor && lineIndex == editor.cursorY {
				if editor.cursorX >= len(runes) {
					line = textStyle.Render(string(runes)) + cursorStyle.Render(" ")
				} else {
					line = textStyle.Render(string(runes[:editor.cursorX])) +
						cursorStyle.Render(string(runes[editor.cursorX:editor.cursorX+1])) +
						textStyle.Render(string(runes[editor.cursorX+1:]))
				}
			} else {
				line = textStyle.Render(string(runes))
			}
		}
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width-1, "…")
		}
		rendered = append(rendered, line)
	}
	return rendered
}

// LineEditor is a single-line input with cursor tracking, used for
// subject lines, form fields, and date bounds. Rune-based so that
// editing multi-byte text keeps cursor arithmetic correct.
type LineEditor struct {
	runes  []rune
	cursor int
}

// NewLineEditor creates a line editor prefilled with the given text,
// cursor at the end.
func NewLineEditor(initial string) LineEditor {
	runes := []rune(initial)
	return LineEditor{runes: runes, cursor: len(runes)}
}

// Value returns the current content.
func (editor LineEditor) Value() string {
	return string(editor.runes)
}

// SetValue replaces the content and moves the cursor to the end.
func (editor *LineEditor) SetValue(text string) {
	editor.runes = []rune(text)
	editor.cursor = len(editor.runes)
}

// Update processes a key message.
func (editor *LineEditor) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			newRunes := make([]rune, len(editor.runes)+1)
			copy(newRunes, editor.runes[:editor.cursor])
			newRunes[editor.cursor] = character
			copy(newRunes[editor.cursor+1:], editor.runes[editor.cursor:])
			editor.runes = newRunes
			editor.cursor++
		}

	case tea.KeyBackspace:
		if editor.cursor > 0 {
			editor.runes = append(editor.runes[:editor.cursor-1], editor.runes[editor.cursor:]...)
			editor.cursor--
		}

	case tea.KeyDelete:
		if editor.cursor < len(editor.runes) {
			editor.runes = append(editor.runes[:editor.cursor], editor.runes[editor.cursor+1:]...)
		}

	case tea.KeyLeft:
		if editor.cursor > 0 {
			editor.cursor--
		}

	case tea.KeyRight:
		if editor.cursor < len(editor.runes) {
			editor.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		editor.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		editor.cursor = len(editor.runes)
	}
}

// Render renders the input with an optional reversed cursor cell.
func (editor LineEditor) Render(theme Theme, showCursor bool) string {
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	if !showCursor {
		return textStyle.Render(string(editor.runes))
	}
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if editor.cursor >= len(editor.runes) {
		return textStyle.Render(string(editor.runes)) + cursorStyle.Render(" ")
	}
	return textStyle.Render(string(editor.runes[:editor.cursor])) +
		cursorStyle.Render(string(editor.runes[editor.cursor:editor.cursor+1])) +
		textStyle.Render(string(editor.runes[editor.cursor+1:]))
}
