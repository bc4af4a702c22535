// Package santa implements the orchestrating participant: it executes the
// program's ToDo list one instruction per scheduler turn, spawning elves
// and file endpoints, wiring pipes, and then reacting to values arriving on
// monitored ports until every monitored source has closed.
package santa
