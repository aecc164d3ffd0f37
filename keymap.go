package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rpncalc/rpn"
)

// calcBinding ties a physical binding to the logical key it produces.
type calcBinding struct {
	binding key.Binding
	logical rpn.Key
}

type keyMap struct {
	Digits  key.Binding
	Dot     key.Binding
	Enter   key.Binding
	Plus    key.Binding
	Minus   key.Binding
	Mul     key.Binding
	Div     key.Binding
	Pow     key.Binding
	Percent key.Binding
	Sqrt    key.Binding
	CHS     key.Binding
	Swap    key.Binding
	CLx     key.Binding
	Bksp    key.Binding
	Clear   key.Binding
	F       key.Binding
	G       key.Binding
	EEX     key.Binding
	Equals  key.Binding
	STO     key.Binding
	RCL     key.Binding
	Sum     key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "digits")),
		Dot:     key.NewBinding(key.WithKeys(".", ","), key.WithHelp(".", "decimal")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ENTER")),
		Plus:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add")),
		Minus:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "sub")),
		Mul:     key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "mul")),
		Div:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "div")),
		Pow:     key.NewBinding(key.WithKeys("^"), key.WithHelp("^", "y^x")),
		Percent: key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "percent")),
		Sqrt:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "√x")),
		CHS:     key.NewBinding(key.WithKeys("n", "_"), key.WithHelp("n", "CHS")),
		Swap:    key.NewBinding(key.WithKeys("x", "tab"), key.WithHelp("x", "x⇄y")),
		CLx:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "CLx")),
		Bksp:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete digit")),
		Clear:   key.NewBinding(key.WithKeys("C", "delete"), key.WithHelp("C", "CLEAR")),
		F:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "f shift")),
		G:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "g shift")),
		EEX:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "EEX")),
		Equals:  key.NewBinding(key.WithKeys("="), key.WithHelp("=", "=")),
		STO:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "STO")),
		RCL:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "RCL")),
		Sum:     key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "Σ")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) operations() []calcBinding {
	return []calcBinding{
		{k.Dot, rpn.KeyDot},
		{k.Enter, rpn.KeyEnter},
		{k.Plus, rpn.KeyPlus},
		{k.Minus, rpn.KeyMinus},
		{k.Mul, rpn.KeyMul},
		{k.Div, rpn.KeyDiv},
		{k.Pow, rpn.KeyPow},
		{k.Percent, rpn.KeyPercent},
		{k.Sqrt, rpn.KeySqrt},
		{k.CHS, rpn.KeyCHS},
		{k.Swap, rpn.KeySwap},
		{k.CLx, rpn.KeyCLx},
		{k.Clear, rpn.KeyClear},
		{k.F, rpn.KeyF},
		{k.G, rpn.KeyG},
		{k.EEX, rpn.KeyEEX},
		{k.Equals, rpn.KeyEquals},
		{k.STO, rpn.KeySTO},
		{k.RCL, rpn.KeyRCL},
		{k.Sum, rpn.KeySum},
	}
}

// logicalKeys resolves a terminal key press to the logical key symbols it
// stands for. Backspace is g CLx; the g is skipped when already latched so
// the latch is not toggled off.
func (k keyMap) logicalKeys(msg tea.KeyMsg, shift rpn.Shift) []string {
	if key.Matches(msg, k.Bksp) {
		if shift == rpn.ShiftG {
			return []string{rpn.KeyCLx.String()}
		}
		return []string{rpn.KeyG.String(), rpn.KeyCLx.String()}
	}
	if sym, ok := k.logicalKey(msg); ok {
		return []string{sym}
	}
	return nil
}

// logicalKey resolves a terminal key press to a logical key symbol.
func (k keyMap) logicalKey(msg tea.KeyMsg) (string, bool) {
	if key.Matches(msg, k.Digits) {
		return msg.String(), true
	}
	for _, b := range k.operations() {
		if key.Matches(msg, b.binding) {
			return b.logical.String(), true
		}
	}
	return "", false
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.F, k.G, k.Sum, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Dot, k.EEX, k.CHS, k.Enter},
		{k.Plus, k.Minus, k.Mul, k.Div, k.Pow},
		{k.Sqrt, k.Percent, k.Swap, k.CLx, k.Bksp, k.Clear},
		{k.F, k.G, k.Sum, k.STO, k.RCL, k.Equals},
		{k.Help, k.Quit},
	}
}
