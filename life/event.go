package life

import (
	"fmt"

	"uk.ac.bris.cs/gridspace/grid"
)

// Event represents any Game of Life event that the engine reports.
type Event interface {
	fmt.Stringer
	GetCompletedTurns() int
}

// State represents a change in the state of execution.
type State int

const (
	Paused State = iota
	Executing
	Quitting
)

func (s State) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Executing:
		return "Executing"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

// AliveCellsCount is sent every tick with the number of alive cells.
type AliveCellsCount struct {
	CompletedTurns int
	CellsCount     int
}

// ImageOutputComplete is sent when a snapshot of the board has been saved.
type ImageOutputComplete struct {
	CompletedTurns int
	Filename       string
}

// StateChange is sent when the engine pauses, resumes or quits.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// CellsFlipped lists the cells that changed state during a turn. Turn 0
// lists the cells alive in the initial board.
type CellsFlipped struct {
	CompletedTurns int
	Cells          []grid.Point
}

// TurnComplete is sent once every cell has been updated for a turn.
type TurnComplete struct {
	CompletedTurns int
}

// FinalTurnComplete is sent when the engine stops, with the alive cells.
type FinalTurnComplete struct {
	CompletedTurns int
	Alive          []grid.Point
}

func (event AliveCellsCount) String() string {
	return fmt.Sprintf("Alive Cells %v", event.CellsCount)
}

func (event AliveCellsCount) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event ImageOutputComplete) String() string {
	return fmt.Sprintf("File %v Output Done", event.Filename)
}

func (event ImageOutputComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event StateChange) String() string {
	return event.NewState.String()
}

func (event StateChange) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event CellsFlipped) String() string {
	return fmt.Sprintf("%d cells flipped", len(event.Cells))
}

func (event CellsFlipped) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event TurnComplete) String() string {
	return fmt.Sprintf("Turn %d complete", event.CompletedTurns)
}

func (event TurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event FinalTurnComplete) String() string {
	return fmt.Sprintf("Final turn %d: %d alive", event.CompletedTurns, len(event.Alive))
}

func (event FinalTurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}
