// Package elf implements the per-elf execution engine: a resumable state
// machine over (position, heading, stack, sleeve) stepping one tile at a
// time across an immutable floorplan. Control flow is implicit in the
// grid: direction tiles set the heading, branch tiles turn right when
// satisfied and left otherwise, and everything else walks straight on.
package elf
