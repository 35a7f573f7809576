package main

import (
	"sync/atomic"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"

	"github.com/luca-patrignani/cardtris/game"
)

type intent int

const (
	intentLeft intent = iota
	intentRight
	intentColumn
	intentBottom
	intentLock
	intentPause
	intentQuit
)

type command struct {
	intent intent
	column int
}

// translate maps a key press to a command. Digits drop into that column,
// counting from 1.
func translate(k keys.Key) (command, bool) {
	switch k.Code {
	case keys.Left:
		return command{intent: intentLeft}, true
	case keys.Right:
		return command{intent: intentRight}, true
	case keys.Down, keys.Space:
		return command{intent: intentBottom}, true
	case keys.Enter:
		return command{intent: intentLock}, true
	case keys.Escape, keys.CtrlC:
		return command{intent: intentQuit}, true
	case keys.RuneKey:
		if len(k.Runes) != 1 {
			return command{}, false
		}
		r := k.Runes[0]
		switch {
		case r >= '1' && r <= '9':
			return command{intent: intentColumn, column: int(r - '1')}, true
		case r == 'a' || r == 'h':
			return command{intent: intentLeft}, true
		case r == 'd' || r == 'l':
			return command{intent: intentRight}, true
		case r == ' ':
			return command{intent: intentBottom}, true
		case r == 'p':
			return command{intent: intentPause}, true
		case r == 'q':
			return command{intent: intentQuit}, true
		}
	}
	return command{}, false
}

// apply hands a command to the game. It reports false for quit.
func apply(g *game.Game, c command) bool {
	switch c.intent {
	case intentLeft:
		g.MoveLeft()
	case intentRight:
		g.MoveRight()
	case intentColumn:
		g.DropToColumn(c.column)
	case intentBottom:
		g.DropToBottom()
	case intentLock:
		g.LockNow()
	case intentPause:
		g.TogglePause()
	case intentQuit:
		return false
	}
	return true
}

// listen forwards key presses as commands until quit is pressed or, once
// stop is set, any key is. commands is closed on return.
func listen(commands chan<- command, stop *atomic.Bool) error {
	defer close(commands)
	return keyboard.Listen(func(k keys.Key) (bool, error) {
		if stop.Load() {
			return true, nil
		}
		c, ok := translate(k)
		if !ok {
			return false, nil
		}
		select {
		case commands <- c:
		default:
		}
		return c.intent == intentQuit, nil
	})
}
