package ir

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// An optional pass for checking structural invariants of the IR:
// termination, the predecessor mirror, argument back pointers and edge
// argument arity.  SSA dominance is the producer's responsibility and is
// not checked here.

var log = commonlog.GetLogger("sway.ir")

type verifier struct {
	c        *Context
	fn       Function
	block    Block
	problems []string
}

func (v *verifier) errorf(format string, args ...any) {
	problem := fmt.Sprintf("block %q: ", v.block.Label(v.c)) + fmt.Sprintf(format, args...)
	v.problems = append(v.problems, problem)
}

// VerifyFunction checks fn's structural invariants and returns an error
// describing every violation found.
func VerifyFunction(c *Context, fn Function) error {
	if fn.NumBlocks(c) == 0 {
		return errors.Errorf("function %q has no blocks", fn.Name(c))
	}
	v := &verifier{c: c, fn: fn}
	for _, block := range fn.Blocks(c) {
		v.block = block
		v.checkInstructions(block)
		v.checkArgs(block)
		v.checkSuccessors(block)
		v.checkPredecessors(block)
	}
	if len(v.problems) > 0 {
		log.Errorf("verification of %q found %d problems", fn.Name(c), len(v.problems))
		return errors.Errorf("ir verification failed for function %q:\n  %s",
			fn.Name(c), strings.Join(v.problems, "\n  "))
	}
	log.Debugf("verified function %q: %d blocks", fn.Name(c), fn.NumBlocks(c))
	return nil
}

// VerifyModule checks every function in the module.
func VerifyModule(c *Context, m Module) error {
	for _, fn := range m.Functions(c) {
		if err := VerifyFunction(c, fn); err != nil {
			return errors.Wrapf(err, "module %s", m.Kind(c))
		}
	}
	return nil
}

func (v *verifier) checkInstructions(block Block) {
	instructions := block.Instructions(v.c)
	for idx, val := range instructions {
		ins, ok := val.Instruction(v.c)
		if !ok {
			v.errorf("instruction list entry %d is not an instruction value", idx)
			continue
		}
		if ins.IsTerminator() && idx != len(instructions)-1 {
			v.errorf("terminator at position %d is not the final instruction", idx)
		}
	}
}

func (v *verifier) checkArgs(block Block) {
	for pos, argVal := range block.Args(v.c) {
		datum, ok := argVal.Argument(v.c)
		if !ok {
			v.errorf("argument %d is not an argument value", pos)
			continue
		}
		if datum.Block != block {
			v.errorf("argument %d has a back pointer to block %q", pos, datum.Block.Label(v.c))
		}
		if datum.Idx != pos {
			v.errorf("argument %d carries index %d", pos, datum.Idx)
		}
	}
}

func (v *verifier) checkSuccessors(block Block) {
	for _, branch := range block.Successors(v.c) {
		succ := branch.Block
		if !succ.HasPredecessor(v.c, block) {
			v.errorf("successor %q does not list this block as a predecessor", succ.Label(v.c))
		}
		if len(branch.Args) != succ.NumArgs(v.c) {
			v.errorf("edge to %q passes %d arguments for %d parameters",
				succ.Label(v.c), len(branch.Args), succ.NumArgs(v.c))
		}
	}
}

func (v *verifier) checkPredecessors(block Block) {
	for _, pred := range block.Predecessors(v.c) {
		found := false
		for _, branch := range pred.Successors(v.c) {
			if branch.Block == block {
				found = true
				break
			}
		}
		if !found {
			v.errorf("predecessor %q does not branch here", pred.Label(v.c))
		}
	}
}
