// Package cascade implements the Idle/Resolving/Settling state machine that
// runs after every lock. A single loop scans the board, scores the hands
// valid at the current level, returns their cards to the supply and applies
// gravity, repeating until a scan removes nothing.
package cascade
