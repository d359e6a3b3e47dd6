/*
Package machine implements the abstract machine the compiler targets: a
tagged heap, an X/Y register file, an environment stack and a unification
work list (PDL), in the style of Warren's abstract machine (WAM).

# Data path

Execution is driven entirely by the instruction executor (exec.go, instr.go):
fetching the next Instruction from the code store, calling its Execute method
and letting it mutate machine state directly. There is no clock cycle to
model and no memory-mapped I/O: the machine is "strictly single-threaded and
synchronous" (spec.md §5), so a single Step call runs one instruction to
completion.

# Heap and store addressing

The heap is an append-only []cell.Cell; H is the index of the next free
slot. Both the heap and the register file are addressed uniformly through
cell.Addr so that deref, bind and unify don't need two code paths (see
deref.go, bind.go, unify.go). This mirrors the teacher's MAR/MDR-mediated
memory controller, generalized from a single physical address space to two
(heap, registers).

# Control

P and CP play the role of a program counter and saved return address: Call
sets CP to the instruction after the call and jumps to the callee's entry
address; Proceed jumps back to CP. Allocate/Deallocate push and pop
environment frames on the stack for permanent (Y) variables that must
survive a Call within a rule's body.
*/
package machine
